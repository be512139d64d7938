package absence

import (
	"context"
	"time"
)

type AbsenceRepository interface {
	Create(ctx context.Context, newAbsence Absence) (Absence, error)
	GetByID(ctx context.Context, id string) (Absence, error)
	Update(ctx context.Context, updated Absence) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AbsenceFilter) ([]Absence, int64, error)

	// DeleteByEmployeeID removes every absence of an employee and returns how many were removed
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)

	// ListActive returns approved absences whose range contains day
	ListActive(ctx context.Context, day time.Time) ([]Absence, error)
}
