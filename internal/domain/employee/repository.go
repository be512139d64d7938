package employee

import "context"

type EmployeeRepository interface {
	// Create inserts a new employee; returns ErrEmployeeCodeExists when the code is taken
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	GetByCode(ctx context.Context, code string) (Employee, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, updated Employee) error
	UpdateStatus(ctx context.Context, code string, status Status) error
	Delete(ctx context.Context, code string) error

	// CountByStatus returns the number of employees per status
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
