package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
)

type DirectoryServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	clientRepo   client.ClientRepository
}

func NewDirectoryService(employeeRepo employee.EmployeeRepository, clientRepo client.ClientRepository) directory.DirectoryService {
	return &DirectoryServiceImpl{
		employeeRepo: employeeRepo,
		clientRepo:   clientRepo,
	}
}

// FindByCode implements directory.DirectoryService. Employees are searched
// before clients.
func (s *DirectoryServiceImpl) FindByCode(ctx context.Context, code string) (directory.Person, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return directory.Person{}, directory.ErrPersonNotFound
	}

	emp, err := s.employeeRepo.GetByCode(ctx, code)
	if err == nil {
		return emp.Person(), nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return directory.Person{}, fmt.Errorf("failed to look up employee %s: %w", code, err)
	}

	cl, err := s.clientRepo.GetByCode(ctx, code)
	if err == nil {
		return cl.Person(), nil
	}
	if !errors.Is(err, client.ErrClientNotFound) {
		return directory.Person{}, fmt.Errorf("failed to look up client %s: %w", code, err)
	}

	return directory.Person{}, directory.ErrPersonNotFound
}

// Resolve implements directory.DirectoryService.
func (s *DirectoryServiceImpl) Resolve(ctx context.Context, code string, mode directory.ScanMode) (directory.Person, error) {
	if !mode.IsValid() {
		return directory.Person{}, directory.ErrInvalidScanMode
	}

	person, err := s.FindByCode(ctx, code)
	if err != nil {
		return directory.Person{}, err
	}

	if expected, ok := mode.Expects(); ok && person.Type != expected {
		return directory.Person{}, fmt.Errorf("%w: %s is a %s", directory.ErrCodeTypeMismatch, person.Code, person.Type)
	}
	return person, nil
}
