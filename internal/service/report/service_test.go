package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/report"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	"github.com/gestipresence/presence-backend-go/internal/repository/memory"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newService(t *testing.T, seed bool) *ReportServiceImpl {
	t.Helper()
	store := memory.NewStore()
	repos := fixtures.Repositories{
		Employees:  memory.NewEmployeeRepository(store),
		Clients:    memory.NewClientRepository(store),
		Attendance: memory.NewAttendanceRepository(store),
		Absences:   memory.NewAbsenceRepository(store),
	}
	if seed {
		ds, err := fixtures.Load()
		require.NoError(t, err)
		_, err = fixtures.Apply(context.Background(), ds, repos)
		require.NoError(t, err)
	}

	svc := NewReportService(repos.Attendance, repos.Employees, repos.Clients, repos.Absences).(*ReportServiceImpl)
	svc.now = func() time.Time { return time.Date(2023, time.June, 19, 12, 0, 0, 0, time.UTC) }
	return svc
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestExport_Golden(t *testing.T) {
	svc := newService(t, true)

	tests := []struct {
		name     string
		req      report.ExportRequest
		filename string
	}{
		{"employees_csv", report.ExportRequest{Dataset: "employees"}, "employees-20230619.csv"},
		{"attendance_csv", report.ExportRequest{Dataset: "attendance", Format: "csv", Date: "18/06/2023"}, "attendance-20230618.csv"},
		{"absences_json", report.ExportRequest{Dataset: "absences", Format: "json"}, "absences-20230619.json"},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.Export(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, out.Filename)
			g.Assert(t, tt.name, out.Body)
		})
	}
}

func TestExport_XLSX(t *testing.T) {
	svc := newService(t, true)

	out, err := svc.Export(context.Background(), report.ExportRequest{Dataset: "clients", Format: "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, report.FormatXLSX.ContentType(), out.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(out.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Clients")
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "Détails", rows[0][3])
	assert.Equal(t, []string{"CL001", "Patrick Durand", "Hôtel", "Chambre 205"}, rows[1][:4])
	assert.Equal(t, "20/06/2023", rows[1][7])
}

func TestExport_Errors(t *testing.T) {
	svc := newService(t, false)
	ctx := context.Background()

	_, err := svc.Export(ctx, report.ExportRequest{Dataset: "employees"})
	assert.ErrorIs(t, err, report.ErrEmptyDataset)

	_, err = svc.Export(ctx, report.ExportRequest{Dataset: "payroll", Format: "pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset")
	assert.Contains(t, err.Error(), "format")
}
