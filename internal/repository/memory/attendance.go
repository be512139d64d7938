package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type attendanceRepositoryImpl struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Record{}, err
	}

	err = r.store.write(ctx, func() error {
		key := recordKey(record.Code, record.Date)
		if _, exists := r.store.recordKeys[key]; exists {
			return attendance.ErrDuplicateRecord
		}
		now := time.Now()
		record.ID = id.String()
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		record.UpdatedAt = now
		r.store.records[record.ID] = record
		r.store.recordKeys[key] = record.ID
		r.store.recordSeq[record.ID] = r.store.nextSeq()
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	var found attendance.Record
	err := r.store.read(func() error {
		rec, ok := r.store.records[id]
		if !ok {
			return attendance.ErrAttendanceNotFound
		}
		found = rec
		return nil
	})
	return found, err
}

// GetByCodeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByCodeAndDate(ctx context.Context, code string, date string) (*attendance.Record, error) {
	var found *attendance.Record
	_ = r.store.read(func() error {
		if id, ok := r.store.recordKeys[recordKey(code, date)]; ok {
			rec := r.store.records[id]
			found = &rec
		}
		return nil
	})
	return found, nil
}

// Update implements attendance.AttendanceRepository. The (code, date) pair of
// a record may change only when the new pair is free.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.records[record.ID]
		if !ok {
			return attendance.ErrAttendanceNotFound
		}
		oldKey := recordKey(current.Code, current.Date)
		newKey := recordKey(record.Code, record.Date)
		if oldKey != newKey {
			if _, taken := r.store.recordKeys[newKey]; taken {
				return attendance.ErrDuplicateRecord
			}
			delete(r.store.recordKeys, oldKey)
			r.store.recordKeys[newKey] = record.ID
		}
		record.CreatedAt = current.CreatedAt
		record.UpdatedAt = time.Now()
		r.store.records[record.ID] = record
		return nil
	})
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	type row struct {
		rec attendance.Record
		day int64
		seq int64
	}

	var matched []row
	_ = r.store.read(func() error {
		for id, rec := range r.store.records {
			if !filter.Matches(rec) {
				continue
			}
			var day int64
			if t, ok := validator.IsValidDate(rec.Date); ok {
				day = t.Unix()
			}
			matched = append(matched, row{rec: rec, day: day, seq: r.store.recordSeq[id]})
		}
		return nil
	})

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].day != matched[j].day {
			return matched[i].day > matched[j].day
		}
		return matched[i].seq > matched[j].seq
	})

	start, end := pagination.Bounds(len(matched), filter.Page, filter.Limit)
	records := make([]attendance.Record, 0, end-start)
	for _, m := range matched[start:end] {
		records = append(records, m.rec)
	}
	return records, int64(len(matched)), nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		rec, ok := r.store.records[id]
		if !ok {
			return attendance.ErrAttendanceNotFound
		}
		delete(r.store.records, id)
		delete(r.store.recordKeys, recordKey(rec.Code, rec.Date))
		delete(r.store.recordSeq, id)
		return nil
	})
}
