package memory

import (
	"context"
	"sync"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
)

type txKey struct{}

// Store holds every table of the in-memory backend. Repositories built from
// the same Store share its data and its locks.
type Store struct {
	mu sync.RWMutex
	// txMu serializes writers against units of work run by WithinTransaction
	txMu sync.Mutex

	employees map[string]employee.Employee
	clients   map[string]client.Client

	records    map[string]attendance.Record
	recordKeys map[string]string // code|date -> record ID
	recordSeq  map[string]int64  // record ID -> insertion order

	absences   map[string]absence.Absence
	absenceSeq map[string]int64

	seq int64
}

func NewStore() *Store {
	return &Store{
		employees:  make(map[string]employee.Employee),
		clients:    make(map[string]client.Client),
		records:    make(map[string]attendance.Record),
		recordKeys: make(map[string]string),
		recordSeq:  make(map[string]int64),
		absences:   make(map[string]absence.Absence),
		absenceSeq: make(map[string]int64),
	}
}

// write runs fn under the write lock. Outside a unit of work it also waits
// for any running unit to finish.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTransaction(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func inTransaction(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

func recordKey(code, date string) string {
	return code + "|" + date
}

type snapshot struct {
	employees  map[string]employee.Employee
	clients    map[string]client.Client
	records    map[string]attendance.Record
	recordKeys map[string]string
	recordSeq  map[string]int64
	absences   map[string]absence.Absence
	absenceSeq map[string]int64
	seq        int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		employees:  cloneMap(s.employees),
		clients:    cloneMap(s.clients),
		records:    cloneMap(s.records),
		recordKeys: cloneMap(s.recordKeys),
		recordSeq:  cloneMap(s.recordSeq),
		absences:   cloneMap(s.absences),
		absenceSeq: cloneMap(s.absenceSeq),
		seq:        s.seq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = snap.employees
	s.clients = snap.clients
	s.records = snap.records
	s.recordKeys = snap.recordKeys
	s.recordSeq = snap.recordSeq
	s.absences = snap.absences
	s.absenceSeq = snap.absenceSeq
	s.seq = snap.seq
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
