package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/config"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	repo     settings.SettingsRepository
	defaults settings.WorkHours
	logger   *slog.Logger
}

func NewSettingsService(repo settings.SettingsRepository, defaults settings.WorkHours, logger *slog.Logger) settings.SettingsService {
	return &SettingsServiceImpl{repo: repo, defaults: defaults, logger: logger}
}

// DefaultsFromConfig validates the configured work hours.
func DefaultsFromConfig(cfg config.WorkHoursConfig) (settings.WorkHours, error) {
	req := settings.UpdateWorkHoursRequest{
		DailyHours:           cfg.DailyHours,
		LunchDurationMinutes: cfg.LunchDurationMinutes,
		WeeklyHours:          cfg.WeeklyHours,
		WorkingDays:          cfg.WorkingDays,
		StartTime:            cfg.StartTime,
		LunchStart:           cfg.LunchStart,
		LunchEnd:             cfg.LunchEnd,
		EndTime:              cfg.EndTime,
	}
	if err := req.Validate(); err != nil {
		return settings.WorkHours{}, fmt.Errorf("invalid work hours configuration: %w", err)
	}
	return req.ToWorkHours(), nil
}

// WorkHours implements settings.Provider.
func (s *SettingsServiceImpl) WorkHours(ctx context.Context) (settings.WorkHours, error) {
	wh, err := s.repo.GetWorkHours(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return s.defaults, nil
		}
		return settings.WorkHours{}, err
	}
	return wh, nil
}

// GetWorkHours implements settings.SettingsService.
func (s *SettingsServiceImpl) GetWorkHours(ctx context.Context) (settings.WorkHoursResponse, error) {
	wh, err := s.WorkHours(ctx)
	if err != nil {
		return settings.WorkHoursResponse{}, fmt.Errorf("failed to get work hours: %w", err)
	}
	return mapWorkHoursToResponse(wh), nil
}

// UpdateWorkHours implements settings.SettingsService.
func (s *SettingsServiceImpl) UpdateWorkHours(ctx context.Context, req settings.UpdateWorkHoursRequest) (settings.WorkHoursResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.WorkHoursResponse{}, err
	}

	if err := s.repo.SaveWorkHours(ctx, req.ToWorkHours()); err != nil {
		return settings.WorkHoursResponse{}, fmt.Errorf("failed to save work hours: %w", err)
	}

	saved, err := s.repo.GetWorkHours(ctx)
	if err != nil {
		return settings.WorkHoursResponse{}, fmt.Errorf("failed to reload work hours: %w", err)
	}

	s.logger.Info("work hours updated", "daily_hours", saved.DailyHours, "working_days", settings.WeekdayNames(saved.WorkingDays))
	return mapWorkHoursToResponse(saved), nil
}

func mapWorkHoursToResponse(wh settings.WorkHours) settings.WorkHoursResponse {
	var updatedAt *string
	if !wh.UpdatedAt.IsZero() {
		v := wh.UpdatedAt.Format(time.RFC3339)
		updatedAt = &v
	}
	return settings.WorkHoursResponse{
		DailyHours:           wh.DailyHours,
		LunchDurationMinutes: wh.LunchDurationMinutes,
		WeeklyHours:          wh.WeeklyHours,
		WorkingDays:          settings.WeekdayNames(wh.WorkingDays),
		StartTime:            wh.StartTime,
		LunchStart:           wh.LunchStart,
		LunchEnd:             wh.LunchEnd,
		EndTime:              wh.EndTime,
		UpdatedAt:            updatedAt,
	}
}
