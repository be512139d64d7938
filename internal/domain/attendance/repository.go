package attendance

import (
	"context"
)

// AttendanceRepository defines data access methods for the presence ledger.
// Implementations must keep at most one record per (code, date).
type AttendanceRepository interface {
	// Create inserts a record; returns ErrDuplicateRecord when (code, date) is taken
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByCodeAndDate returns nil, nil when no record exists for the pair
	GetByCodeAndDate(ctx context.Context, code string, date string) (*Record, error)

	Update(ctx context.Context, record Record) error

	// List returns matching records, newest first. A zero Limit returns all of them.
	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	Delete(ctx context.Context, id string) error
}
