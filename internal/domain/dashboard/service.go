package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns today's attendance metrics with the rows behind each card
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
