package memory

import (
	"context"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
)

type settingsRepository struct {
	store *Store
}

// GetWorkHours implements settings.SettingsRepository.
func (r *settingsRepository) GetWorkHours(ctx context.Context) (settings.WorkHours, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if r.store.workHours == nil {
		return settings.WorkHours{}, settings.ErrSettingsNotFound
	}
	wh := *r.store.workHours
	wh.WorkingDays = append([]time.Weekday(nil), wh.WorkingDays...)
	return wh, nil
}

// SaveWorkHours implements settings.SettingsRepository.
func (r *settingsRepository) SaveWorkHours(ctx context.Context, wh settings.WorkHours) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wh.WorkingDays = append([]time.Weekday(nil), wh.WorkingDays...)
	wh.UpdatedAt = time.Now()
	r.store.workHours = &wh
	return nil
}
