package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns combined dashboard data for a DD/MM/YYYY day, today when empty
	GetDashboard(ctx context.Context, date string) (*DashboardResponse, error)
}
