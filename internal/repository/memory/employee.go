package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
)

type employeeRepositoryImpl struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{store: store}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.store.write(ctx, func() error {
		if _, exists := r.store.employees[newEmployee.Code]; exists {
			return employee.ErrEmployeeCodeExists
		}
		now := time.Now()
		if newEmployee.CreatedAt.IsZero() {
			newEmployee.CreatedAt = now
		}
		newEmployee.UpdatedAt = now
		r.store.employees[newEmployee.Code] = newEmployee
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return newEmployee, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	var found employee.Employee
	err := r.store.read(func() error {
		e, ok := r.store.employees[code]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		found = e
		return nil
	})
	return found, err
}

// ExistsByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	_ = r.store.read(func() error {
		_, exists = r.store.employees[code]
		return nil
	})
	return exists, nil
}

// List implements employee.EmployeeRepository. Results are ordered by code.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var matched []employee.Employee
	_ = r.store.read(func() error {
		for _, e := range r.store.employees {
			if filter.Matches(e) {
				matched = append(matched, e)
			}
		}
		return nil
	})

	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })

	start, end := pagination.Bounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], int64(len(matched)), nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.employees[updated.Code]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		updated.CreatedAt = current.CreatedAt
		updated.UpdatedAt = time.Now()
		r.store.employees[updated.Code] = updated
		return nil
	})
}

// UpdateStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateStatus(ctx context.Context, code string, status employee.Status) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.employees[code]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		current.Status = status
		current.UpdatedAt = time.Now()
		r.store.employees[code] = current
		return nil
	})
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, code string) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.employees[code]; !ok {
			return employee.ErrEmployeeNotFound
		}
		delete(r.store.employees, code)
		return nil
	})
}

// CountByStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountByStatus(ctx context.Context) (map[employee.Status]int64, error) {
	counts := make(map[employee.Status]int64)
	_ = r.store.read(func() error {
		for _, e := range r.store.employees {
			counts[e.Status]++
		}
		return nil
	})
	return counts, nil
}
