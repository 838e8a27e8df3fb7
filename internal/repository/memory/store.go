// Package memory keeps every repository in process memory. It backs the
// demo mode and the service and handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/leave"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
)

// Store is the shared state behind the memory repositories.
type Store struct {
	mu sync.RWMutex

	employees map[string]employee.Employee
	entries   map[string]attendance.TimeEntry // by entry ID
	balances  map[string]float64
	workHours *settings.WorkHours
	requests  map[string]leave.LeaveRequest

	// serializes units of work
	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		employees: make(map[string]employee.Employee),
		entries:   make(map[string]attendance.TimeEntry),
		balances:  make(map[string]float64),
		requests:  make(map[string]leave.LeaveRequest),
	}
}

func (s *Store) Entries() attendance.EntryRepository {
	return &entryRepository{store: s}
}

func (s *Store) Balances() attendance.BalanceRepository {
	return &balanceRepository{store: s}
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{store: s}
}

func (s *Store) Settings() settings.SettingsRepository {
	return &settingsRepository{store: s}
}

func (s *Store) LeaveRequests() leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: s}
}

func (s *Store) TxManager() attendance.TxManager {
	return &txManager{store: s}
}

type txKey struct{}

type txManager struct {
	store *Store
}

// WithinTx runs fn while holding the store-wide unit of work lock. Writes
// are applied immediately; there is no rollback.
func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}
