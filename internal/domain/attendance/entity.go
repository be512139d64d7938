package attendance

import (
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
)

// UnknownClassifier is stored on records created from a scan. The scan path
// does not copy the department or service from the directory.
const UnknownClassifier = "Inconnu"

// Record is one row of the presence ledger: a single person on a single day.
type Record struct {
	ID         string
	PersonType directory.PersonType
	Code       string
	Name       string
	Classifier string
	Date       string // DD/MM/YYYY
	TimeIn     string // HH:MM, empty until set
	TimeOut    string // HH:MM, empty until set
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Status is derived from the clock times of a record.
type Status string

const (
	StatusAbsent     Status = "Absent"
	StatusInProgress Status = "En cours"
	StatusComplete   Status = "Complet"
)

var Statuses = []string{
	string(StatusAbsent),
	string(StatusInProgress),
	string(StatusComplete),
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAbsent, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// rank orders statuses along Absent -> En cours -> Complet.
func (s Status) rank() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusComplete:
		return 2
	default:
		return 0
	}
}

// DeriveStatus computes the status implied by a pair of clock times.
func DeriveStatus(timeIn, timeOut string) Status {
	switch {
	case timeOut != "":
		return StatusComplete
	case timeIn != "":
		return StatusInProgress
	default:
		return StatusAbsent
	}
}

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// ScanEvent is a resolved scan: the person is known, the time is formatted.
type ScanEvent struct {
	PersonType directory.PersonType
	Code       string
	Name       string
	Direction  Direction
	Date       string // DD/MM/YYYY
	Time       string // HH:MM
}

// RecentScan is an entry of the cosmetic recent activity feed.
type RecentScan struct {
	PersonType directory.PersonType
	Code       string
	Name       string
	Direction  Direction
	Date       string
	Time       string
	Status     Status
	Changed    bool
	At         time.Time
}
