package settings

import "context"

// Provider exposes the work-hours configuration read-only.
type Provider interface {
	WorkHours(ctx context.Context) (WorkHours, error)
}

// SettingsService defines business logic for work-hours settings
type SettingsService interface {
	Provider

	// GetWorkHours returns the effective configuration
	GetWorkHours(ctx context.Context) (WorkHoursResponse, error)

	// UpdateWorkHours replaces the configuration (admin only)
	UpdateWorkHours(ctx context.Context, req UpdateWorkHoursRequest) (WorkHoursResponse, error)
}
