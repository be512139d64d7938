package badge

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/gestipresence/presence-backend-go/internal/domain/badge"
	"github.com/gestipresence/presence-backend-go/internal/domain/client"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/repository/memory"
	directoryservice "github.com/gestipresence/presence-backend-go/internal/service/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) badge.BadgeService {
	t.Helper()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	clients := memory.NewClientRepository(store)

	ctx := context.Background()
	_, err := employees.Create(ctx, employee.Employee{
		Code: "EMP001", Name: "Jean Dupont", Department: employee.DepartmentAdministration, Status: employee.StatusPresent,
	})
	require.NoError(t, err)
	_, err = clients.Create(ctx, client.Client{
		Code: "CL001", Name: "Patrick Durand", Service: client.ServiceHotel, Status: client.StatusActive,
	})
	require.NoError(t, err)

	return NewBadgeService(directoryservice.NewDirectoryService(employees, clients))
}

func TestRender_QRCode(t *testing.T) {
	svc := newService(t)

	b, err := svc.Render(context.Background(), badge.RenderRequest{Code: "cl001"})
	require.NoError(t, err)
	assert.Equal(t, "CL001", b.Code)
	assert.Equal(t, badge.FormatQRCode, b.Format)
	assert.Equal(t, "badge-CL001-qrcode.png", b.Filename)

	img, err := png.Decode(bytes.NewReader(b.Image))
	require.NoError(t, err)
	assert.Equal(t, badge.DefaultQRSize, img.Bounds().Dx())
	assert.Equal(t, badge.DefaultQRSize, img.Bounds().Dy())
}

func TestRender_Barcode(t *testing.T) {
	svc := newService(t)

	b, err := svc.Render(context.Background(), badge.RenderRequest{Code: "EMP001", Format: "barcode", Size: 600})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b.Image))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRender_Errors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Render(ctx, badge.RenderRequest{Code: "EMP999"})
	assert.ErrorIs(t, err, directory.ErrPersonNotFound)

	_, err = svc.Render(ctx, badge.RenderRequest{Code: "EMP001", Format: "pdf417"})
	require.Error(t, err)

	// CODE128 of EMP001 is wider than 64 modules.
	_, err = svc.Render(ctx, badge.RenderRequest{Code: "EMP001", Format: "barcode", Size: 64})
	assert.ErrorIs(t, err, badge.ErrEncodingFailed)
}
