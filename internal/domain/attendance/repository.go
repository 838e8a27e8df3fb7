package attendance

import (
	"context"
	"time"
)

// EntryRepository persists time entries, keyed uniquely by (employeeID, date).
type EntryRepository interface {
	// Lock serializes clock operations of one employee for the rest of the
	// surrounding unit of work
	Lock(ctx context.Context, employeeID string) error

	// GetByEmployeeAndDate returns nil, nil when the employee has no entry on date
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*TimeEntry, error)

	// Save inserts or replaces the entry
	Save(ctx context.Context, entry TimeEntry) error

	// List retrieves entries with filters and pagination
	List(ctx context.Context, filter EntryFilter) ([]TimeEntry, int64, error)

	// ListByDate retrieves every entry recorded on date
	ListByDate(ctx context.Context, date time.Time) ([]TimeEntry, error)
}

// BalanceRepository stores the running hour balance of each employee.
type BalanceRepository interface {
	// Get returns 0 for employees without a stored balance
	Get(ctx context.Context, employeeID string) (float64, error)
	Set(ctx context.Context, employeeID string, balance float64) error
}

// TxManager runs fn as one unit of work. Repositories called with the
// context passed to fn take part in it.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
