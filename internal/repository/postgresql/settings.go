package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/pkg/database"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// GetWorkHours implements settings.SettingsRepository.
func (r *settingsRepository) GetWorkHours(ctx context.Context) (settings.WorkHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT daily_hours, lunch_duration_minutes, weekly_hours, working_days,
			   start_time, lunch_start, lunch_end, end_time, updated_at
		FROM work_hours_settings
		WHERE id = 1
	`

	var (
		wh   settings.WorkHours
		days []int16
	)
	err := q.QueryRow(ctx, query).Scan(
		&wh.DailyHours, &wh.LunchDurationMinutes, &wh.WeeklyHours, &days,
		&wh.StartTime, &wh.LunchStart, &wh.LunchEnd, &wh.EndTime, &wh.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.WorkHours{}, settings.ErrSettingsNotFound
		}
		return settings.WorkHours{}, fmt.Errorf("failed to get work hours: %w", err)
	}

	wh.WorkingDays = make([]time.Weekday, 0, len(days))
	for _, d := range days {
		wh.WorkingDays = append(wh.WorkingDays, time.Weekday(d))
	}

	return wh, nil
}

// SaveWorkHours implements settings.SettingsRepository.
func (r *settingsRepository) SaveWorkHours(ctx context.Context, wh settings.WorkHours) error {
	q := GetQuerier(ctx, r.db)

	days := make([]int16, 0, len(wh.WorkingDays))
	for _, d := range wh.WorkingDays {
		days = append(days, int16(d))
	}

	query := `
		INSERT INTO work_hours_settings (
			id, daily_hours, lunch_duration_minutes, weekly_hours, working_days,
			start_time, lunch_start, lunch_end, end_time, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			daily_hours = EXCLUDED.daily_hours,
			lunch_duration_minutes = EXCLUDED.lunch_duration_minutes,
			weekly_hours = EXCLUDED.weekly_hours,
			working_days = EXCLUDED.working_days,
			start_time = EXCLUDED.start_time,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		wh.DailyHours, wh.LunchDurationMinutes, wh.WeeklyHours, days,
		wh.StartTime, wh.LunchStart, wh.LunchEnd, wh.EndTime,
	)
	if err != nil {
		return fmt.Errorf("failed to save work hours: %w", err)
	}

	return nil
}
