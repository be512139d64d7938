package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/scan"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/gestipresence/presence-backend-go/internal/pkg/sse"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
)

// TopicScans is the SSE topic every reconciled scan is published on.
const TopicScans = "scans"

const notifyTimeout = 10 * time.Second

// Publisher fans scan events out to live dashboards.
type Publisher interface {
	Publish(topic string, event sse.Event)
}

// Notifier pushes a short text message to an operator channel.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Config struct {
	Location    *time.Location
	RecentLimit int
}

type AttendanceServiceImpl struct {
	attendanceRepo   attendance.AttendanceRepository
	directoryService directory.DirectoryService
	detector         scan.Detector
	publisher        Publisher
	notifier         Notifier

	location *time.Location
	locks    *keyedMutex
	feed     *recentFeed
	now      func() time.Time
}

// NewAttendanceService wires the reconciler. publisher and notifier may be nil.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	directoryService directory.DirectoryService,
	detector scan.Detector,
	publisher Publisher,
	notifier Notifier,
	cfg Config,
) attendance.AttendanceService {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	limit := cfg.RecentLimit
	if limit <= 0 {
		limit = 5
	}
	return &AttendanceServiceImpl{
		attendanceRepo:   attendanceRepo,
		directoryService: directoryService,
		detector:         detector,
		publisher:        publisher,
		notifier:         notifier,
		location:         loc,
		locks:            newKeyedMutex(),
		feed:             newRecentFeed(limit),
		now:              time.Now,
	}
}

// Scan implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	code := req.Code
	var declared directory.PersonType
	if req.Payload != "" {
		det, ok := s.detector.Detect([]byte(req.Payload))
		if !ok {
			return attendance.ScanResponse{}, attendance.ErrUndetectableCode
		}
		code, declared = det.Code, det.Type
	}

	person, err := s.directoryService.Resolve(ctx, code, directory.ScanMode(req.Mode))
	if err != nil {
		return attendance.ScanResponse{}, err
	}
	if declared != "" && declared != person.Type {
		return attendance.ScanResponse{}, fmt.Errorf("%w: badge says %s", directory.ErrCodeTypeMismatch, declared)
	}

	at := req.At
	if at.IsZero() {
		at = s.now()
	}
	at = at.In(s.location)

	ev := attendance.ScanEvent{
		PersonType: person.Type,
		Code:       person.Code,
		Name:       person.Name,
		Direction:  attendance.Direction(req.Direction),
		Date:       validator.FormatDate(at),
		Time:       validator.FormatClock(at),
	}

	rec, isNew, changed, err := s.reconcile(ctx, ev)
	if err != nil {
		return attendance.ScanResponse{}, err
	}

	recent := attendance.RecentScan{
		PersonType: ev.PersonType,
		Code:       ev.Code,
		Name:       ev.Name,
		Direction:  ev.Direction,
		Date:       ev.Date,
		Time:       ev.Time,
		Status:     rec.Status,
		Changed:    changed,
		At:         at,
	}
	s.feed.Push(recent)

	resp := attendance.ScanResponse{
		Record:  attendance.NewAttendanceResponse(rec),
		IsNew:   isNew,
		Changed: changed,
		Message: scanMessage(ev.Direction, changed),
	}

	if s.publisher != nil {
		s.publisher.Publish(TopicScans, sse.Event{
			Event: "scan",
			Data:  resp,
		})
	}
	if changed && s.notifier != nil {
		go s.notify(fmt.Sprintf("%s %s (%s) à %s le %s", resp.Message, ev.Name, ev.Code, ev.Time, ev.Date))
	}

	slog.Info("Scan reconciled", "code", ev.Code, "direction", ev.Direction, "is_new", isNew, "changed", changed)
	return resp, nil
}

// reconcile holds the (code, date) lock while reading and writing the ledger.
// A concurrent writer from another process can still win the insert; the
// store's unique key reports it and the scan is reconciled again.
func (s *AttendanceServiceImpl) reconcile(ctx context.Context, ev attendance.ScanEvent) (attendance.Record, bool, bool, error) {
	unlock := s.locks.Lock(ev.Code + "|" + ev.Date)
	defer unlock()

	for attempt := 0; ; attempt++ {
		existing, err := s.attendanceRepo.GetByCodeAndDate(ctx, ev.Code, ev.Date)
		if err != nil {
			return attendance.Record{}, false, false, fmt.Errorf("failed to load attendance record: %w", err)
		}

		rec, isNew, changed := attendance.Reconcile(existing, ev)
		switch {
		case isNew:
			created, err := s.attendanceRepo.Create(ctx, rec)
			if errors.Is(err, attendance.ErrDuplicateRecord) && attempt == 0 {
				continue
			}
			if err != nil {
				return attendance.Record{}, false, false, fmt.Errorf("failed to create attendance record: %w", err)
			}
			return created, true, true, nil
		case changed:
			if err := s.attendanceRepo.Update(ctx, rec); err != nil {
				return attendance.Record{}, false, false, fmt.Errorf("failed to update attendance record: %w", err)
			}
			rec.UpdatedAt = s.now()
			return rec, false, true, nil
		default:
			return rec, false, false, nil
		}
	}
}

func (s *AttendanceServiceImpl) notify(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(ctx, text); err != nil {
		slog.Error("Failed to send scan notification", "error", err)
	}
}

func scanMessage(dir attendance.Direction, changed bool) string {
	switch {
	case !changed:
		return "Aucun changement"
	case dir == attendance.DirectionIn:
		return "Entrée enregistrée"
	default:
		return "Sortie enregistrée"
	}
}

// RecentScans implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecentScans(ctx context.Context, limit int) ([]attendance.RecentScanResponse, error) {
	entries := s.feed.List(limit)
	out := make([]attendance.RecentScanResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, attendance.NewRecentScanResponse(e))
	}
	return out, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	items := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		items = append(items, attendance.NewAttendanceResponse(r))
	}

	totalPages, showing := pagination.Window(total, filter.Page, filter.Limit)
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: items,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(rec), nil
}

// CreateAttendance implements attendance.AttendanceService. Manual entries
// take the person's department or service from the directory.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	person, err := s.directoryService.FindByCode(ctx, req.Code)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	unlock := s.locks.Lock(person.Code + "|" + req.Date)
	defer unlock()

	existing, err := s.attendanceRepo.GetByCodeAndDate(ctx, person.Code, req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicateRecord
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Record{
		PersonType: person.Type,
		Code:       person.Code,
		Name:       person.Name,
		Classifier: person.Classifier,
		Date:       req.Date,
		TimeIn:     req.TimeIn,
		TimeOut:    req.TimeOut,
		Status:     attendance.DeriveStatus(req.TimeIn, req.TimeOut),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance record created manually", "code", created.Code, "date", created.Date)
	return attendance.NewAttendanceResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	unlock := s.locks.Lock(current.Code + "|" + current.Date)
	defer unlock()

	// Re-read under the lock; a scan may have landed in between.
	rec, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.TimeIn != nil {
		rec.TimeIn = *req.TimeIn
	}
	if req.TimeOut != nil {
		rec.TimeOut = *req.TimeOut
	}
	if err := attendance.ValidateClockOrder(rec.TimeIn, rec.TimeOut); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	next := attendance.DeriveStatus(rec.TimeIn, rec.TimeOut)
	if !attendance.CanTransition(rec.Status, next) {
		return attendance.AttendanceResponse{}, fmt.Errorf("%w: %s to %s", attendance.ErrStatusRegression, rec.Status, next)
	}
	rec.Status = next

	if err := s.attendanceRepo.Update(ctx, rec); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	rec.UpdatedAt = s.now()
	return attendance.NewAttendanceResponse(rec), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Attendance record deleted", "id", id)
	return nil
}
