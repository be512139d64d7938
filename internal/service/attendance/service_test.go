package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/scan"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	"github.com/gestipresence/presence-backend-go/internal/pkg/sse"
	"github.com/gestipresence/presence-backend-go/internal/repository/memory"
	directoryservice "github.com/gestipresence/presence-backend-go/internal/service/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (p *fakePublisher) Publish(topic string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	event.Topic = topic
	p.events = append(p.events, event)
}

type fakeNotifier struct {
	sent chan string
}

func (n *fakeNotifier) Notify(ctx context.Context, text string) error {
	n.sent <- text
	return nil
}

type testEnv struct {
	svc       *AttendanceServiceImpl
	repo      attendance.AttendanceRepository
	publisher *fakePublisher
	notifier  *fakeNotifier
}

// newTestEnv loads the seeded directory with an empty ledger.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	clients := memory.NewClientRepository(store)
	repo := memory.NewAttendanceRepository(store)

	ds, err := fixtures.Load()
	require.NoError(t, err)
	ds.Attendance = nil
	ds.Absences = nil
	_, err = fixtures.Apply(context.Background(), ds, fixtures.Repositories{
		Employees:  employees,
		Clients:    clients,
		Attendance: repo,
		Absences:   memory.NewAbsenceRepository(store),
	})
	require.NoError(t, err)

	publisher := &fakePublisher{}
	notifier := &fakeNotifier{sent: make(chan string, 100)}
	svc := NewAttendanceService(
		repo,
		directoryservice.NewDirectoryService(employees, clients),
		scan.NewBadgeDetector(),
		publisher,
		notifier,
		Config{Location: time.UTC, RecentLimit: 3},
	).(*AttendanceServiceImpl)

	return testEnv{svc: svc, repo: repo, publisher: publisher, notifier: notifier}
}

func at(hour, minute int) time.Time {
	return time.Date(2023, time.June, 18, hour, minute, 0, 0, time.UTC)
}

func TestScan_EmployeeDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: "EMP001", Direction: "in", At: at(8, 15)})
	require.NoError(t, err)
	assert.True(t, in.IsNew)
	assert.True(t, in.Changed)
	assert.Equal(t, "Entrée enregistrée", in.Message)
	assert.Equal(t, "Jean Dupont", in.Record.Name)
	assert.Equal(t, attendance.UnknownClassifier, in.Record.Classifier)
	assert.Equal(t, "18/06/2023", in.Record.Date)
	assert.Equal(t, "08:15", in.Record.TimeIn)
	assert.Equal(t, string(attendance.StatusInProgress), in.Record.Status)

	out, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: "EMP001", Direction: "out", At: at(17, 30)})
	require.NoError(t, err)
	assert.False(t, out.IsNew)
	assert.True(t, out.Changed)
	assert.Equal(t, "Sortie enregistrée", out.Message)

	rec, err := env.repo.GetByCodeAndDate(ctx, "EMP001", "18/06/2023")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "08:15", rec.TimeIn)
	assert.Equal(t, "17:30", rec.TimeOut)
	assert.Equal(t, attendance.StatusComplete, rec.Status)
	assert.Equal(t, directory.PersonTypeEmployee, rec.PersonType)

	// A second check-in on a completed day changes nothing.
	again, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: "EMP001", Direction: "in", At: at(18, 0)})
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, "Aucun changement", again.Message)
	assert.Equal(t, "08:15", again.Record.TimeIn)

	assert.Len(t, env.publisher.events, 3)
	assert.Equal(t, TopicScans, env.publisher.events[0].Topic)

	for range 2 {
		select {
		case <-env.notifier.sent:
		case <-time.After(time.Second):
			t.Fatal("expected a notification for each change")
		}
	}
}

func TestScan_OutWithoutIn(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Scan(context.Background(), attendance.ScanRequest{Code: "EMP003", Direction: "out", At: at(17, 0)})
	require.NoError(t, err)
	assert.True(t, resp.IsNew)
	assert.Empty(t, resp.Record.TimeIn)
	assert.Equal(t, "17:00", resp.Record.TimeOut)
	assert.Equal(t, string(attendance.StatusComplete), resp.Record.Status)
}

func TestScan_UnknownCodeCreatesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: "EMP999", Direction: "in", At: at(9, 0)})
	assert.ErrorIs(t, err, directory.ErrPersonNotFound)

	_, total, err := env.repo.List(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, env.publisher.events)
}

func TestScan_QRPayload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	payload := `{"code":"CL001","name":"Patrick Durand","detail":"Hôtel","type":"Client","timestamp":"2023-06-15T10:00:00Z"}`

	resp, err := env.svc.Scan(ctx, attendance.ScanRequest{Payload: payload, Direction: "in", Mode: "qrcode", At: at(10, 15)})
	require.NoError(t, err)
	assert.Equal(t, "CL001", resp.Record.Code)
	assert.Equal(t, string(directory.PersonTypeClient), resp.Record.PersonType)

	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Payload: payload, Direction: "out", Mode: "barcode", At: at(11, 0)})
	assert.ErrorIs(t, err, directory.ErrCodeTypeMismatch)

	forged := `{"code":"EMP001","type":"Client"}`
	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Payload: forged, Direction: "in", At: at(11, 0)})
	assert.ErrorIs(t, err, directory.ErrCodeTypeMismatch)

	_, err = env.svc.Scan(ctx, attendance.ScanRequest{Payload: "not a badge", Direction: "in", At: at(11, 0)})
	assert.ErrorIs(t, err, attendance.ErrUndetectableCode)
}

func TestScan_ConcurrentScansKeepOneRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dir := "in"
			if i%2 == 1 {
				dir = "out"
			}
			_, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: "EMP005", Direction: dir, At: at(8, i%60)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	code := "EMP005"
	records, total, err := env.repo.List(ctx, attendance.AttendanceFilter{Code: &code})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)
}

func TestRecentScans_Capped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i, code := range []string{"EMP001", "EMP003", "EMP005", "EMP006"} {
		_, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: code, Direction: "in", At: at(8, i)})
		require.NoError(t, err)
	}

	recent, err := env.svc.RecentScans(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "EMP006", recent[0].Code)
	assert.Equal(t, "EMP003", recent[2].Code)

	two, err := env.svc.RecentScans(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestCreateAttendance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateAttendance(ctx, attendance.CreateAttendanceRequest{
		Code: "CL002", Date: "18/06/2023", TimeIn: "12:30", TimeOut: "14:15",
	})
	require.NoError(t, err)
	assert.Equal(t, "Restaurant", created.Classifier)
	assert.Equal(t, string(attendance.StatusComplete), created.Status)

	_, err = env.svc.CreateAttendance(ctx, attendance.CreateAttendanceRequest{Code: "CL002", Date: "18/06/2023"})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	_, err = env.svc.CreateAttendance(ctx, attendance.CreateAttendanceRequest{Code: "CL999", Date: "18/06/2023"})
	assert.ErrorIs(t, err, directory.ErrPersonNotFound)
}

func TestUpdateAttendance_StatusOnlyMovesForward(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: "EMP006", Direction: "in", At: at(8, 17)})
	require.NoError(t, err)
	id := resp.Record.ID

	out := "17:25"
	updated, err := env.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: id, TimeOut: &out})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusComplete), updated.Status)

	cleared := ""
	_, err = env.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: id, TimeOut: &cleared})
	assert.ErrorIs(t, err, attendance.ErrStatusRegression)

	early := "07:00"
	_, err = env.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: id, TimeOut: &early})
	require.Error(t, err)

	got, err := env.svc.GetAttendance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "17:25", got.TimeOut)
}

func TestListAndDeleteAttendance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i, code := range []string{"EMP001", "CL001", "CL006"} {
		_, err := env.svc.Scan(ctx, attendance.ScanRequest{Code: code, Direction: "in", At: at(9, i)})
		require.NoError(t, err)
	}

	clientType := string(directory.PersonTypeClient)
	list, err := env.svc.ListAttendance(ctx, attendance.AttendanceFilter{PersonType: &clientType})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.Limit)
	assert.Equal(t, "1-2 of 2", list.Showing)

	require.NoError(t, env.svc.DeleteAttendance(ctx, list.Attendances[0].ID))
	assert.ErrorIs(t, env.svc.DeleteAttendance(ctx, list.Attendances[0].ID), attendance.ErrAttendanceNotFound)
}
