package attendance

import (
	"fmt"
	"time"
)

// Status is the position of a time entry in the daily clock cycle.
type Status string

const (
	StatusNotStarted  Status = "not-started"
	StatusClockedIn   Status = "clocked-in"
	StatusLunchBreak  Status = "lunch-break"
	StatusLunchReturn Status = "lunch-return"
	StatusClockedOut  Status = "clocked-out"
)

// IsWorking reports whether the employee is inside an open cycle.
func (s Status) IsWorking() bool {
	return s == StatusClockedIn || s == StatusLunchBreak || s == StatusLunchReturn
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusClockedIn, StatusLunchBreak, StatusLunchReturn, StatusClockedOut:
		return true
	}
	return false
}

// Operation names a clock transition.
type Operation string

const (
	OpClockIn  Operation = "clock-in"
	OpLunchOut Operation = "lunch-out"
	OpLunchIn  Operation = "lunch-in"
	OpClockOut Operation = "clock-out"
)

// TimeEntry is the attendance record of one employee on one calendar day.
// Clock marks are minute resolution and expressed in the service timezone.
type TimeEntry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Cycle      int

	ClockIn  *time.Time
	LunchOut *time.Time
	LunchIn  *time.Time
	ClockOut *time.Time

	TotalHours         float64
	OvertimeHours      float64
	OpeningBalance     float64
	AccumulatedBalance float64
	Status             Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// EntryID derives the stable identifier of the entry of employeeID on date.
func EntryID(employeeID string, date time.Time) string {
	return fmt.Sprintf("%s-%s", employeeID, date.Format("2006-01-02"))
}

// NewTimeEntry builds the not-started entry returned before the first
// clock-in of the day. It is not persisted until a transition succeeds.
func NewTimeEntry(employeeID string, date time.Time, openingBalance float64) TimeEntry {
	return TimeEntry{
		ID:                 EntryID(employeeID, date),
		EmployeeID:         employeeID,
		Date:               date,
		OpeningBalance:     openingBalance,
		AccumulatedBalance: openingBalance,
		Status:             StatusNotStarted,
	}
}

// IsFinalized reports whether the current cycle has been closed.
func (e TimeEntry) IsFinalized() bool {
	return e.Status == StatusClockedOut && e.ClockOut != nil
}
