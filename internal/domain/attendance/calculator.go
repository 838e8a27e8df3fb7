package attendance

import (
	"math"
	"time"
)

// Projection holds the values derived from the clock marks of an entry.
type Projection struct {
	TotalHours         float64
	DailyBalance       float64
	OvertimeHours      float64
	AccumulatedBalance float64
}

// Project derives worked hours and balances of e at now against a daily
// target. It has no side effects; open intervals are measured up to now.
func Project(e TimeEntry, dailyTarget float64, now time.Time) Projection {
	if e.ClockIn == nil {
		return Projection{AccumulatedBalance: e.OpeningBalance}
	}

	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	worked := end.Sub(*e.ClockIn)

	switch {
	case e.LunchOut != nil && e.LunchIn != nil:
		worked -= e.LunchIn.Sub(*e.LunchOut)
	case e.LunchOut != nil && e.Status == StatusLunchBreak:
		worked -= now.Sub(*e.LunchOut)
	}

	total := math.Max(0, worked.Minutes()/60)
	daily := total - dailyTarget

	accumulated := e.OpeningBalance
	if e.IsFinalized() {
		accumulated = e.OpeningBalance + daily
	}

	return Projection{
		TotalHours:         total,
		DailyBalance:       daily,
		OvertimeHours:      math.Max(0, e.OpeningBalance+daily),
		AccumulatedBalance: accumulated,
	}
}

// Apply copies the projection into the derived fields of e.
func (p Projection) Apply(e *TimeEntry) {
	e.TotalHours = p.TotalHours
	e.OvertimeHours = p.OvertimeHours
	e.AccumulatedBalance = p.AccumulatedBalance
}

// Finalize returns the running balance a clocked-out entry leaves behind.
// The result depends only on the entry, so repeated calls never add the
// daily balance twice.
func Finalize(e TimeEntry, dailyTarget float64) (float64, bool) {
	if !e.IsFinalized() {
		return e.OpeningBalance, false
	}
	return Project(e, dailyTarget, *e.ClockOut).AccumulatedBalance, true
}
