package settings

import (
	"strings"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts lower or mixed case English day names.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// WeekdayNames renders days as lower case names.
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, strings.ToLower(d.String()))
	}
	return names
}

type UpdateWorkHoursRequest struct {
	DailyHours           float64  `json:"daily_hours"`
	LunchDurationMinutes int      `json:"lunch_duration_minutes"`
	WeeklyHours          float64  `json:"weekly_hours"`
	WorkingDays          []string `json:"working_days"`
	StartTime            string   `json:"start_time"`
	LunchStart           string   `json:"lunch_start"`
	LunchEnd             string   `json:"lunch_end"`
	EndTime              string   `json:"end_time"`
}

func (r *UpdateWorkHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DailyHours <= 0 || r.DailyHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_hours",
			Message: "daily_hours must be greater than 0 and at most 24",
		})
	}

	if r.LunchDurationMinutes < 0 || r.LunchDurationMinutes > 240 {
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_duration_minutes",
			Message: "lunch_duration_minutes must be between 0 and 240",
		})
	}

	if r.WeeklyHours < 0 || r.WeeklyHours > 168 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_hours",
			Message: "weekly_hours must be between 0 and 168",
		})
	}

	if len(r.WorkingDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: "at least one working day is required",
		})
	}
	for _, day := range r.WorkingDays {
		if _, ok := ParseWeekday(day); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "invalid day: " + day,
			})
			break
		}
	}

	times := []struct {
		field string
		value string
	}{
		{"start_time", r.StartTime},
		{"lunch_start", r.LunchStart},
		{"lunch_end", r.LunchEnd},
		{"end_time", r.EndTime},
	}
	valid := true
	for _, t := range times {
		if !validator.IsValidTimeOfDay(t.value) {
			valid = false
			errs = append(errs, validator.ValidationError{
				Field:   t.field,
				Message: t.field + " must be in HH:MM format",
			})
		}
	}

	// HH:MM strings compare chronologically
	if valid && !(r.StartTime < r.LunchStart && r.LunchStart < r.LunchEnd && r.LunchEnd < r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "times must satisfy start_time < lunch_start < lunch_end < end_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToWorkHours converts a validated request.
func (r UpdateWorkHoursRequest) ToWorkHours() WorkHours {
	days := make([]time.Weekday, 0, len(r.WorkingDays))
	seen := make(map[time.Weekday]bool)
	for _, name := range r.WorkingDays {
		d, ok := ParseWeekday(name)
		if ok && !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return WorkHours{
		DailyHours:           r.DailyHours,
		LunchDurationMinutes: r.LunchDurationMinutes,
		WeeklyHours:          r.WeeklyHours,
		WorkingDays:          days,
		StartTime:            r.StartTime,
		LunchStart:           r.LunchStart,
		LunchEnd:             r.LunchEnd,
		EndTime:              r.EndTime,
	}
}

type WorkHoursResponse struct {
	DailyHours           float64  `json:"daily_hours"`
	LunchDurationMinutes int      `json:"lunch_duration_minutes"`
	WeeklyHours          float64  `json:"weekly_hours"`
	WorkingDays          []string `json:"working_days"`
	StartTime            string   `json:"start_time"`
	LunchStart           string   `json:"lunch_start"`
	LunchEnd             string   `json:"lunch_end"`
	EndTime              string   `json:"end_time"`
	UpdatedAt            *string  `json:"updated_at,omitempty"`
}
