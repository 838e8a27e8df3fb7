package settings

import "time"

// WorkHours is the work-time configuration consumed by the hour calculator.
type WorkHours struct {
	DailyHours           float64
	LunchDurationMinutes int
	WeeklyHours          float64
	WorkingDays          []time.Weekday
	StartTime            string // HH:MM
	LunchStart           string
	LunchEnd             string
	EndTime              string
	UpdatedAt            time.Time
}

// IsWorkingDay reports whether d is one of the configured working days.
func (w WorkHours) IsWorkingDay(d time.Weekday) bool {
	for _, wd := range w.WorkingDays {
		if wd == d {
			return true
		}
	}
	return false
}
