package settings

import "context"

type SettingsRepository interface {
	// GetWorkHours returns ErrSettingsNotFound when nothing was saved yet
	GetWorkHours(ctx context.Context) (WorkHours, error)
	SaveWorkHours(ctx context.Context, workHours WorkHours) error
}
