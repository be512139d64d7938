package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates a new employee with a generated EMP code
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee retrieves a single employee by badge code
	GetEmployee(ctx context.Context, code string) (EmployeeResponse, error)

	// ListEmployees lists employees with filters
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// UpdateEmployee updates an existing employee
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdateStatus sets the availability status manually
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee and every absence recorded for them
	DeleteEmployee(ctx context.Context, code string) error
}
