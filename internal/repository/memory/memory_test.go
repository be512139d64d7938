package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	ds, err := fixtures.Load()
	require.NoError(t, err)
	_, err = fixtures.Apply(context.Background(), ds, fixtures.Repositories{
		Employees:  NewEmployeeRepository(store),
		Clients:    NewClientRepository(store),
		Attendance: NewAttendanceRepository(store),
		Absences:   NewAbsenceRepository(store),
	})
	require.NoError(t, err)
	return store
}

func TestSeed_IsIdempotent(t *testing.T) {
	store := seededStore(t)
	ds, err := fixtures.Load()
	require.NoError(t, err)

	sum, err := fixtures.Apply(context.Background(), ds, fixtures.Repositories{
		Employees:  NewEmployeeRepository(store),
		Clients:    NewClientRepository(store),
		Attendance: NewAttendanceRepository(store),
		Absences:   NewAbsenceRepository(store),
	})
	require.NoError(t, err)
	assert.Equal(t, fixtures.Summary{}, sum)

	_, total, err := NewAbsenceRepository(store).List(context.Background(), absence.AbsenceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestEmployeeRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(seededStore(t))

	dept := employee.DepartmentAdministration
	list, total, err := repo.List(ctx, employee.EmployeeFilter{Department: &dept, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "EMP001", list[0].Code)
	assert.Equal(t, "EMP007", list[1].Code)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), counts[employee.StatusPresent])
	assert.Equal(t, int64(2), counts[employee.StatusAbsent])
	assert.Equal(t, int64(1), counts[employee.StatusLeave])
}

func TestEmployeeRepository_CreateDuplicate(t *testing.T) {
	repo := NewEmployeeRepository(seededStore(t))
	_, err := repo.Create(context.Background(), employee.Employee{Code: "EMP001", Name: "Other"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestAttendanceRepository_UniquePerCodeAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore())

	var created, duplicates atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, attendance.Record{
				PersonType: directory.PersonTypeEmployee,
				Code:       "EMP001",
				Date:       "18/06/2023",
				TimeIn:     "08:00",
				Status:     attendance.StatusInProgress,
			})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, attendance.ErrDuplicateRecord):
				duplicates.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(19), duplicates.Load())
}

func TestAttendanceRepository_GetByCodeAndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(seededStore(t))

	rec, err := repo.GetByCodeAndDate(ctx, "CL001", "18/06/2023")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "10:15", rec.TimeIn)

	missing, err := repo.GetByCodeAndDate(ctx, "CL001", "19/06/2023")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(seededStore(t))

	_, err := repo.Create(ctx, attendance.Record{
		PersonType: directory.PersonTypeEmployee, Code: "EMP001", Date: "19/06/2023",
		TimeIn: "08:00", Status: attendance.StatusInProgress,
	})
	require.NoError(t, err)

	all, total, err := repo.List(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
	assert.Len(t, all, 10)
	assert.Equal(t, "19/06/2023", all[0].Date)

	page, _, err := repo.List(ctx, attendance.AttendanceFilter{Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.Len(t, page, 4)
}

func TestAbsenceRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	repo := NewAbsenceRepository(seededStore(t))

	active, err := repo.ListActive(ctx, time.Date(2023, time.June, 21, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	codes := make([]string, 0, len(active))
	for _, a := range active {
		codes = append(codes, a.EmployeeID)
	}
	assert.ElementsMatch(t, []string{"EMP008", "EMP004"}, codes)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	employees := NewEmployeeRepository(store)
	absences := NewAbsenceRepository(store)
	tx := NewTransactor(store)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := absences.DeleteByEmployeeID(ctx, "EMP002")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		require.NoError(t, employees.Delete(ctx, "EMP002"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = employees.GetByCode(ctx, "EMP002")
	assert.NoError(t, err)
	emp2 := "EMP002"
	_, total, err := absences.List(ctx, absence.AbsenceFilter{EmployeeID: &emp2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTransactor_Commits(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	employees := NewEmployeeRepository(store)
	tx := NewTransactor(store)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return employees.Delete(ctx, "EMP007")
	})
	require.NoError(t, err)

	_, err = employees.GetByCode(ctx, "EMP007")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
