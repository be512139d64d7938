package dashboard

import "github.com/gestipresence/presence-backend-go/internal/domain/attendance"

// DashboardResponse is the landing page summary for one day.
type DashboardResponse struct {
	Date        string                          `json:"date"`
	Attendance  AttendanceStatsResponse         `json:"attendance"`
	Employees   EmployeeStatusStatsResponse     `json:"employees"`
	ByService   []ClassifierBreakdown           `json:"by_service"`
	RecentScans []attendance.RecentScanResponse `json:"recent_scans"`
}

type AttendanceStatsResponse struct {
	Total         int64 `json:"total"`
	InProgress    int64 `json:"in_progress"`
	Complete      int64 `json:"complete"`
	Absent        int64 `json:"absent"`
	EmployeesSeen int64 `json:"employees_seen"`
	ClientsSeen   int64 `json:"clients_seen"`
}

type EmployeeStatusStatsResponse struct {
	Total   int64 `json:"total"`
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Leave   int64 `json:"leave"`
	Mission int64 `json:"mission"`
}

// ClassifierBreakdown counts the day's records per department or service.
type ClassifierBreakdown struct {
	Classifier string `json:"classifier"`
	Count      int64  `json:"count"`
}
