package employee

import (
	"context"
	"strings"
	"testing"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	"github.com/gestipresence/presence-backend-go/internal/pkg/codegen"
	"github.com/gestipresence/presence-backend-go/internal/pkg/storage"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"github.com/gestipresence/presence-backend-go/internal/repository/memory"
	"github.com/gestipresence/presence-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	svc         employee.EmployeeService
	absenceRepo absence.AbsenceRepository
	files       file.FileService
}

func newTestEnv(t *testing.T, digits ...int) testEnv {
	t.Helper()
	store := memory.NewStore()
	repos := fixtures.Repositories{
		Employees:  memory.NewEmployeeRepository(store),
		Clients:    memory.NewClientRepository(store),
		Attendance: memory.NewAttendanceRepository(store),
		Absences:   memory.NewAbsenceRepository(store),
	}
	ds, err := fixtures.Load()
	require.NoError(t, err)
	_, err = fixtures.Apply(context.Background(), ds, repos)
	require.NoError(t, err)

	codes := codegen.NewGenerator()
	if len(digits) > 0 {
		i := 0
		codes = codegen.NewGeneratorWithSource(func(int) int {
			v := digits[i%len(digits)]
			i++
			return v
		})
	}

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	files := file.NewFileService(local)

	return testEnv{
		svc:         NewEmployeeService(memory.NewTransactor(store), repos.Employees, repos.Absences, files, codes),
		absenceRepo: repos.Absences,
		files:       files,
	}
}

func TestCreateEmployee_SkipsTakenCodes(t *testing.T) {
	// 0 -> EMP001 is seeded, 41 -> EMP042 is free
	env := newTestEnv(t, 0, 41)

	created, err := env.svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		Name:       "Claire Fontaine",
		Department: employee.DepartmentHotel,
		Position:   "Gouvernante",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP042", created.Code)
	assert.Equal(t, string(employee.StatusPresent), created.Status)
}

func TestCreateEmployee_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		Name:       "",
		Department: "Piscine",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestUpdateEmployee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	position := "Directeur général"
	updated, err := env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{Code: "EMP001", Position: &position})
	require.NoError(t, err)
	assert.Equal(t, position, updated.Position)
	assert.Equal(t, "Jean Dupont", updated.Name)

	_, err = env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{Code: "EMP404", Position: &position})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	got, err := env.svc.UpdateStatus(ctx, employee.UpdateStatusRequest{Code: "EMP003", Status: string(employee.StatusMission)})
	require.NoError(t, err)
	assert.Equal(t, string(employee.StatusMission), got.Status)

	_, err = env.svc.UpdateStatus(ctx, employee.UpdateStatusRequest{Code: "EMP003", Status: "Malade"})
	require.Error(t, err)
}

func TestListEmployees(t *testing.T) {
	env := newTestEnv(t)

	dept := employee.DepartmentRestaurant
	list, err := env.svc.ListEmployees(context.Background(), employee.EmployeeFilter{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)
	assert.Equal(t, "EMP002", list.Employees[0].Code)
	assert.Equal(t, "EMP008", list.Employees[1].Code)
}

func TestDeleteEmployee_RemovesAbsences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	code := "EMP002"
	before, total, err := env.absenceRepo.List(ctx, absence.AbsenceFilter{EmployeeID: &code})
	require.NoError(t, err)
	require.NotEmpty(t, before)
	require.Positive(t, total)

	require.NoError(t, env.svc.DeleteEmployee(ctx, code))

	_, err = env.svc.GetEmployee(ctx, code)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, total, err = env.absenceRepo.List(ctx, absence.AbsenceFilter{EmployeeID: &code})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteEmployee_RemovesJustificationFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	code := "EMP002"
	list, _, err := env.absenceRepo.List(ctx, absence.AbsenceFilter{EmployeeID: &code})
	require.NoError(t, err)
	require.NotEmpty(t, list)

	a := list[0]
	path, err := env.files.UploadJustification(ctx, a.ID, strings.NewReader("%PDF-1.4 arret"), "arret.pdf")
	require.NoError(t, err)
	a.Justification = path
	require.NoError(t, env.absenceRepo.Update(ctx, a))

	rc, err := env.files.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	require.NoError(t, env.svc.DeleteEmployee(ctx, code))

	_, err = env.files.Open(ctx, path)
	assert.Error(t, err)
}

func TestDeleteEmployee_UnknownKeepsAbsences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, before, err := env.absenceRepo.List(ctx, absence.AbsenceFilter{})
	require.NoError(t, err)

	err = env.svc.DeleteEmployee(ctx, "EMP404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, after, err := env.absenceRepo.List(ctx, absence.AbsenceFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
