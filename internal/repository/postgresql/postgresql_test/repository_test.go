package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	"github.com/gestipresence/presence-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, setup *TestDatabaseSetup) fixtures.Repositories {
	t.Helper()
	repos := fixtures.Repositories{
		Employees:  postgresql.NewEmployeeRepository(setup.DB),
		Clients:    postgresql.NewClientRepository(setup.DB),
		Attendance: postgresql.NewAttendanceRepository(setup.DB),
		Absences:   postgresql.NewAbsenceRepository(setup.DB),
	}
	ds, err := fixtures.Load()
	require.NoError(t, err)
	_, err = fixtures.Apply(context.Background(), ds, repos)
	require.NoError(t, err)
	return repos
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repos := seed(t, setup)
	ctx := context.Background()

	e, err := repos.Employees.GetByCode(ctx, "EMP003")
	require.NoError(t, err)
	assert.Equal(t, "Pierre Thomas", e.Name)

	_, err = repos.Employees.Create(ctx, employee.Employee{Code: "EMP003", Name: "x", Department: "Hôtel", Status: employee.StatusPresent})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	search := "dupont"
	list, total, err := repos.Employees.List(ctx, employee.EmployeeFilter{Search: &search, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "EMP001", list[0].Code)

	require.NoError(t, repos.Employees.UpdateStatus(ctx, "EMP003", employee.StatusMission))
	counts, err := repos.Employees.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[employee.StatusMission])
}

func TestClientRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	repos := seed(t, setup)
	ctx := context.Background()

	c, err := repos.Clients.GetByCode(ctx, "CL001")
	require.NoError(t, err)
	require.NotNil(t, c.ArrivalDate)
	assert.Equal(t, time.June, c.ArrivalDate.Month())

	_, err = repos.Clients.GetByCode(ctx, "CL999")
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestAttendanceRepository_UniquePerCodeAndDate(t *testing.T) {
	setup := NewTestDatabase(t)
	repos := seed(t, setup)
	ctx := context.Background()

	_, err := repos.Attendance.Create(ctx, attendance.Record{
		PersonType: directory.PersonTypeEmployee,
		Code:       "EMP001",
		Name:       "Jean Dupont",
		Classifier: attendance.UnknownClassifier,
		Date:       "18/06/2023",
		TimeIn:     "09:00",
		Status:     attendance.StatusInProgress,
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	rec, err := repos.Attendance.GetByCodeAndDate(ctx, "EMP001", "18/06/2023")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "08:15", rec.TimeIn)
	assert.Equal(t, "18/06/2023", rec.Date)

	none, err := repos.Attendance.GetByCodeAndDate(ctx, "EMP001", "19/06/2023")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTransactor_DeleteCascadeRollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	repos := seed(t, setup)
	ctx := context.Background()
	tx := postgresql.NewTransactor(setup.DB)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repos.Absences.DeleteByEmployeeID(ctx, "EMP002"); err != nil {
			return err
		}
		if err := repos.Employees.Delete(ctx, "EMP002"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repos.Employees.GetByCode(ctx, "EMP002")
	require.NoError(t, err)

	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repos.Absences.DeleteByEmployeeID(ctx, "EMP002"); err != nil {
			return err
		}
		return repos.Employees.Delete(ctx, "EMP002")
	})
	require.NoError(t, err)

	emp := "EMP002"
	_, total, err := repos.Absences.List(ctx, absence.AbsenceFilter{EmployeeID: &emp})
	require.NoError(t, err)
	assert.Zero(t, total)
}
