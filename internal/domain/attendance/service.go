package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Scan resolves a badge and reconciles it into today's record
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)

	// RecentScans returns the latest scans, newest first
	RecentScans(ctx context.Context, limit int) ([]RecentScanResponse, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// CreateAttendance records a manual entry submitted from the attendance form
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance fixes clock times; the status may not move backwards
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	DeleteAttendance(ctx context.Context, id string) error
}
