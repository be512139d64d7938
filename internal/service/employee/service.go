package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/pkg/codegen"
	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/gestipresence/presence-backend-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	transactor   database.Transactor
	employeeRepo employee.EmployeeRepository
	absenceRepo  absence.AbsenceRepository
	fileService  file.FileService
	codes        *codegen.Generator
}

func NewEmployeeService(
	transactor database.Transactor,
	employeeRepo employee.EmployeeRepository,
	absenceRepo absence.AbsenceRepository,
	fileService file.FileService,
	codes *codegen.Generator,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		transactor:   transactor,
		employeeRepo: employeeRepo,
		absenceRepo:  absenceRepo,
		fileService:  fileService,
		codes:        codes,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	code, err := s.codes.Generate(ctx, employee.CodePrefix, s.employeeRepo.ExistsByCode)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee code: %w", err)
	}

	now := time.Now()
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Code:       code,
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Status:     employee.Status(req.Status),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "code", created.Code, "department", created.Department)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, code)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	items := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, employee.NewEmployeeResponse(e))
	}

	totalPages, showing := pagination.Window(total, filter.Page, filter.Limit)
	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  items,
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}
	if req.Status != nil {
		emp.Status = employee.Status(*req.Status)
	}
	emp.UpdatedAt = time.Now()

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee.NewEmployeeResponse(emp), nil
}

// UpdateStatus implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateStatus(ctx context.Context, req employee.UpdateStatusRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateStatus(ctx, req.Code, employee.Status(req.Status)); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.GetEmployee(ctx, req.Code)
}

// DeleteEmployee implements employee.EmployeeService. The employee and their
// absences go together or not at all. Justification files are removed once
// the rows are gone.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, code string) error {
	var (
		removed int64
		files   []string
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		absences, _, err := s.absenceRepo.List(ctx, absence.AbsenceFilter{EmployeeID: &code})
		if err != nil {
			return fmt.Errorf("failed to list absences: %w", err)
		}
		for _, a := range absences {
			if a.HasJustificationFile() {
				files = append(files, a.Justification)
			}
		}

		n, err := s.absenceRepo.DeleteByEmployeeID(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to delete absences: %w", err)
		}
		removed = n
		return s.employeeRepo.Delete(ctx, code)
	})
	if err != nil {
		return err
	}

	for _, path := range files {
		if err := s.fileService.DeleteFile(ctx, path); err != nil {
			slog.Error("Failed to delete justification file", "employee", code, "path", path, "error", err)
		}
	}

	slog.Info("Employee deleted", "code", code, "absences_removed", removed, "files_removed", len(files))
	return nil
}
