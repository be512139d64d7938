package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
)

// Repositories groups the stores a Dataset is written to.
type Repositories struct {
	Employees  employee.EmployeeRepository
	Clients    client.ClientRepository
	Attendance attendance.AttendanceRepository
	Absences   absence.AbsenceRepository
}

// Summary counts what Apply inserted.
type Summary struct {
	Employees  int
	Clients    int
	Attendance int
	Absences   int
}

// Apply inserts the dataset. People whose code already exists and records
// already held for the same code and day are skipped, so it is safe to run
// on every start. Absences are only inserted for employees Apply created.
func Apply(ctx context.Context, ds *Dataset, repos Repositories) (Summary, error) {
	var sum Summary
	fresh := make(map[string]bool)

	for _, e := range ds.Employees {
		_, err := repos.Employees.Create(ctx, e)
		if errors.Is(err, employee.ErrEmployeeCodeExists) {
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("failed to seed employee %s: %w", e.Code, err)
		}
		fresh[e.Code] = true
		sum.Employees++
	}

	for _, c := range ds.Clients {
		_, err := repos.Clients.Create(ctx, c)
		if errors.Is(err, client.ErrClientCodeExists) {
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("failed to seed client %s: %w", c.Code, err)
		}
		sum.Clients++
	}

	for _, r := range ds.Attendance {
		_, err := repos.Attendance.Create(ctx, r)
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("failed to seed attendance for %s: %w", r.Code, err)
		}
		sum.Attendance++
	}

	for _, a := range ds.Absences {
		if !fresh[a.EmployeeID] {
			continue
		}
		if _, err := repos.Absences.Create(ctx, a); err != nil {
			return sum, fmt.Errorf("failed to seed absence for %s: %w", a.EmployeeID, err)
		}
		sum.Absences++
	}

	return sum, nil
}
