package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/dashboard"
	"github.com/gestipresence/presence-backend-go/internal/domain/directory"
	"github.com/gestipresence/presence-backend-go/internal/domain/employee"
	"github.com/gestipresence/presence-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// RecentScanSource is the part of the attendance service the dashboard reads.
type RecentScanSource interface {
	RecentScans(ctx context.Context, limit int) ([]attendance.RecentScanResponse, error)
}

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	scans          RecentScanSource
	location       *time.Location
	now            func() time.Time
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	scans RecentScanSource,
	location *time.Location,
) dashboard.DashboardService {
	if location == nil {
		location = time.Local
	}
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		scans:          scans,
		location:       location,
		now:            time.Now,
	}
}

// GetDashboard returns the day summary. The ledger, the directory and the
// recent scan feed are read in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, date string) (*dashboard.DashboardResponse, error) {
	if date == "" {
		date = validator.FormatDate(s.now().In(s.location))
	} else if _, ok := validator.IsValidDate(date); !ok {
		return nil, dashboard.ErrInvalidDate
	}

	var (
		attendanceStats dashboard.AttendanceStatsResponse
		byService       []dashboard.ClassifierBreakdown
		statusStats     dashboard.EmployeeStatusStatsResponse
		recent          []attendance.RecentScanResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Day ledger: status counts and per-service breakdown
	g.Go(func() error {
		records, _, err := s.attendanceRepo.List(gCtx, attendance.AttendanceFilter{Date: &date})
		if err != nil {
			return fmt.Errorf("failed to list attendance records: %w", err)
		}
		attendanceStats, byService = summarize(records)
		return nil
	})

	// 2. Directory availability
	g.Go(func() error {
		counts, err := s.employeeRepo.CountByStatus(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count employees by status: %w", err)
		}
		statusStats = dashboard.EmployeeStatusStatsResponse{
			Present: counts[employee.StatusPresent],
			Absent:  counts[employee.StatusAbsent],
			Leave:   counts[employee.StatusLeave],
			Mission: counts[employee.StatusMission],
		}
		for _, n := range counts {
			statusStats.Total += n
		}
		return nil
	})

	// 3. Recent scans
	g.Go(func() error {
		scans, err := s.scans.RecentScans(gCtx, 0)
		if err != nil {
			return err
		}
		recent = scans
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Date:        date,
		Attendance:  attendanceStats,
		Employees:   statusStats,
		ByService:   byService,
		RecentScans: recent,
	}, nil
}

func summarize(records []attendance.Record) (dashboard.AttendanceStatsResponse, []dashboard.ClassifierBreakdown) {
	var stats dashboard.AttendanceStatsResponse
	perClassifier := make(map[string]int64)

	for _, r := range records {
		stats.Total++
		switch r.Status {
		case attendance.StatusInProgress:
			stats.InProgress++
		case attendance.StatusComplete:
			stats.Complete++
		case attendance.StatusAbsent:
			stats.Absent++
		}
		// Absent rows are placeholders; only people actually seen count.
		if r.Status != attendance.StatusAbsent {
			if r.PersonType == directory.PersonTypeEmployee {
				stats.EmployeesSeen++
			} else {
				stats.ClientsSeen++
			}
		}
		perClassifier[r.Classifier]++
	}

	breakdown := make([]dashboard.ClassifierBreakdown, 0, len(perClassifier))
	for c, n := range perClassifier {
		breakdown = append(breakdown, dashboard.ClassifierBreakdown{Classifier: c, Count: n})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Classifier < breakdown[j].Classifier
	})
	return stats, breakdown
}
