package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/dashboard"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	"github.com/gestipresence/presence-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScans struct {
	scans []attendance.RecentScanResponse
	err   error
}

func (s stubScans) RecentScans(ctx context.Context, limit int) ([]attendance.RecentScanResponse, error) {
	return s.scans, s.err
}

func newService(t *testing.T, scans RecentScanSource) *DashboardServiceImpl {
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

	svc := NewDashboardService(repos.Attendance, repos.Employees, scans, time.UTC).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2023, time.June, 18, 15, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetDashboard_SeededDay(t *testing.T) {
	recent := []attendance.RecentScanResponse{{Code: "EMP001", Direction: "out", Time: "17:30"}}
	svc := newService(t, stubScans{scans: recent})

	got, err := svc.GetDashboard(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "18/06/2023", got.Date)
	assert.Equal(t, dashboard.AttendanceStatsResponse{
		Total:         9,
		InProgress:    2,
		Complete:      5,
		Absent:        2,
		EmployeesSeen: 4,
		ClientsSeen:   3,
	}, got.Attendance)
	assert.Equal(t, dashboard.EmployeeStatusStatsResponse{
		Total:   8,
		Present: 5,
		Absent:  2,
		Leave:   1,
	}, got.Employees)

	require.NotEmpty(t, got.ByService)
	assert.Equal(t, dashboard.ClassifierBreakdown{Classifier: "Hôtel", Count: 3}, got.ByService[0])
	assert.Equal(t, dashboard.ClassifierBreakdown{Classifier: "Restaurant", Count: 3}, got.ByService[1])
	assert.Equal(t, recent, got.RecentScans)
}

func TestGetDashboard_OtherDay(t *testing.T) {
	svc := newService(t, stubScans{})

	got, err := svc.GetDashboard(context.Background(), "19/06/2023")
	require.NoError(t, err)
	assert.Zero(t, got.Attendance.Total)
	assert.Empty(t, got.ByService)
}

func TestGetDashboard_Errors(t *testing.T) {
	svc := newService(t, stubScans{err: errors.New("feed down")})

	_, err := svc.GetDashboard(context.Background(), "2023-06-18")
	assert.ErrorIs(t, err, dashboard.ErrInvalidDate)

	_, err = svc.GetDashboard(context.Background(), "18/06/2023")
	assert.EqualError(t, err, "feed down")
}
