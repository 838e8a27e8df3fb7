package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	// Transition guard reasons
	ErrAlreadyClockedIn    = errors.New("you have already clocked in today")
	ErrNotClockedIn        = errors.New("you need to clock in first")
	ErrAlreadyClockedOut   = errors.New("you have already clocked out")
	ErrLunchAlreadyStarted = errors.New("you have already started your lunch break today")
	ErrLunchNotStarted     = errors.New("you need to start your lunch break first")
	ErrLunchAlreadyEnded   = errors.New("you have already returned from lunch today")
	ErrLunchNotEnded       = errors.New("you need to return from lunch before clocking out")

	// General errors
	ErrEntryNotFound = errors.New("time entry not found")
)

// GuardViolation is returned when a transition's precondition does not hold.
// The entry is left untouched.
type GuardViolation struct {
	Operation Operation
	Status    Status
	Reason    error
}

func (g *GuardViolation) Error() string {
	return fmt.Sprintf("%s refused while %s: %v", g.Operation, g.Status, g.Reason)
}

func (g *GuardViolation) Unwrap() error {
	return g.Reason
}

func newGuardViolation(op Operation, status Status, reason error) *GuardViolation {
	return &GuardViolation{Operation: op, Status: status, Reason: reason}
}
