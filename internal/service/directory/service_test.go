package directory

import (
	"context"
	"testing"

	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	"github.com/gestipresence/presence-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) directory.DirectoryService {
	t.Helper()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	clients := memory.NewClientRepository(store)

	ds, err := fixtures.Load()
	require.NoError(t, err)
	_, err = fixtures.Apply(context.Background(), ds, fixtures.Repositories{
		Employees:  employees,
		Clients:    clients,
		Attendance: memory.NewAttendanceRepository(store),
		Absences:   memory.NewAbsenceRepository(store),
	})
	require.NoError(t, err)

	return NewDirectoryService(employees, clients)
}

func TestFindByCode(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	p, err := svc.FindByCode(ctx, "EMP005")
	require.NoError(t, err)
	assert.Equal(t, directory.PersonTypeEmployee, p.Type)
	assert.Equal(t, "Ahmed Bensaid", p.Name)
	assert.Equal(t, "Salle de conférence", p.Classifier)

	p, err = svc.FindByCode(ctx, " cl004 ")
	require.NoError(t, err)
	assert.Equal(t, directory.PersonTypeClient, p.Type)
	assert.Equal(t, "Nadia Kaddour", p.Name)

	_, err = svc.FindByCode(ctx, "EMP999")
	assert.ErrorIs(t, err, directory.ErrPersonNotFound)

	_, err = svc.FindByCode(ctx, "")
	assert.ErrorIs(t, err, directory.ErrPersonNotFound)
}

func TestResolve_ModeMustMatchType(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "EMP001", directory.ScanModeBarcode)
	assert.NoError(t, err)

	_, err = svc.Resolve(ctx, "CL001", directory.ScanModeQRCode)
	assert.NoError(t, err)

	_, err = svc.Resolve(ctx, "CL001", directory.ScanModeBarcode)
	assert.ErrorIs(t, err, directory.ErrCodeTypeMismatch)

	_, err = svc.Resolve(ctx, "EMP001", directory.ScanModeQRCode)
	assert.ErrorIs(t, err, directory.ErrCodeTypeMismatch)

	_, err = svc.Resolve(ctx, "EMP001", directory.ScanModeAny)
	assert.NoError(t, err)

	_, err = svc.Resolve(ctx, "EMP001", directory.ScanMode("nfc"))
	assert.ErrorIs(t, err, directory.ErrInvalidScanMode)
}
