package attendance

import (
	"context"
)

// AttendanceService defines the clock operations and attendance queries
type AttendanceService interface {
	// ClockIn starts the day, or a new cycle after clocking out
	ClockIn(ctx context.Context, employeeID string) (TimeEntryResponse, error)

	// LunchOut starts the lunch break
	LunchOut(ctx context.Context, employeeID string) (TimeEntryResponse, error)

	// LunchIn ends the lunch break
	LunchIn(ctx context.Context, employeeID string) (TimeEntryResponse, error)

	// ClockOut finalizes the cycle and moves the running balance
	ClockOut(ctx context.Context, employeeID string) (TimeEntryResponse, error)

	// Today returns today's entry projected at the current time
	Today(ctx context.Context, employeeID string) (TimeEntryResponse, error)

	// Live returns the live projection streamed to the employee
	Live(ctx context.Context, employeeID string) (LiveHours, error)

	// History retrieves the entries of one employee
	History(ctx context.Context, employeeID string, filter HistoryFilter) (ListTimeEntryResponse, error)

	// List retrieves entries across employees (admin)
	List(ctx context.Context, filter EntryFilter) (ListTimeEntryResponse, error)

	// Balance returns the stored running balance of the employee
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)
}
