package attendance

import "time"

// CheckTransition returns a *GuardViolation when op is not allowed from the
// current state of e, nil otherwise.
func CheckTransition(op Operation, e TimeEntry) error {
	var reason error

	switch op {
	case OpClockIn:
		if e.Status.IsWorking() {
			reason = ErrAlreadyClockedIn
		}

	case OpLunchOut:
		switch {
		case e.ClockIn == nil || e.Status == StatusNotStarted:
			reason = ErrNotClockedIn
		case e.Status == StatusClockedOut:
			reason = ErrAlreadyClockedOut
		case e.LunchOut != nil || e.Status != StatusClockedIn:
			reason = ErrLunchAlreadyStarted
		}

	case OpLunchIn:
		switch {
		case e.ClockIn == nil || e.Status == StatusNotStarted:
			reason = ErrNotClockedIn
		case e.LunchOut == nil:
			reason = ErrLunchNotStarted
		case e.LunchIn != nil:
			reason = ErrLunchAlreadyEnded
		case e.Status != StatusLunchBreak:
			reason = ErrAlreadyClockedOut
		}

	case OpClockOut:
		switch {
		case e.ClockIn == nil || e.Status == StatusNotStarted:
			reason = ErrNotClockedIn
		case e.ClockOut != nil || e.Status == StatusClockedOut:
			reason = ErrAlreadyClockedOut
		case e.LunchOut != nil && e.LunchIn == nil:
			reason = ErrLunchNotEnded
		}
	}

	if reason != nil {
		return newGuardViolation(op, e.Status, reason)
	}
	return nil
}

// Transition applies op to e at now and returns the updated entry. A
// clock-in starts a cycle whose opening balance is openingBalance; other
// operations ignore it. On a guard violation e is returned unchanged.
func Transition(op Operation, e TimeEntry, now time.Time, openingBalance float64) (TimeEntry, error) {
	if err := CheckTransition(op, e); err != nil {
		return e, err
	}

	mark := now
	switch op {
	case OpClockIn:
		if e.Status == StatusClockedOut {
			e.LunchOut, e.LunchIn, e.ClockOut = nil, nil, nil
		}
		e.Cycle++
		e.ClockIn = &mark
		e.OpeningBalance = openingBalance
		e.Status = StatusClockedIn
	case OpLunchOut:
		e.LunchOut = &mark
		e.Status = StatusLunchBreak
	case OpLunchIn:
		e.LunchIn = &mark
		e.Status = StatusLunchReturn
	case OpClockOut:
		e.ClockOut = &mark
		e.Status = StatusClockedOut
	}

	return e, nil
}
