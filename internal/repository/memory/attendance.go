package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
)

type entryRepository struct {
	store *Store
}

// Lock implements attendance.EntryRepository. The unit of work lock
// already serializes every clock operation.
func (r *entryRepository) Lock(ctx context.Context, employeeID string) error {
	return nil
}

// GetByEmployeeAndDate implements attendance.EntryRepository.
func (r *entryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.TimeEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entry, ok := r.store.entries[attendance.EntryID(employeeID, date)]
	if !ok {
		return nil, nil
	}
	entry = r.withName(entry)
	return &entry, nil
}

// Save implements attendance.EntryRepository.
func (r *entryRepository) Save(ctx context.Context, entry attendance.TimeEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	if existing, ok := r.store.entries[entry.ID]; ok {
		entry.CreatedAt = existing.CreatedAt
	} else {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	entry.EmployeeName = nil
	r.store.entries[entry.ID] = entry
	return nil
}

// List implements attendance.EntryRepository.
func (r *entryRepository) List(ctx context.Context, filter attendance.EntryFilter) ([]attendance.TimeEntry, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []attendance.TimeEntry
	for _, entry := range r.store.entries {
		if matchesEntry(entry, filter) {
			matched = append(matched, r.withName(entry))
		}
	}

	sortEntries(matched, filter.SortBy, strings.ToLower(filter.SortOrder) == "asc")

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// ListByDate implements attendance.EntryRepository.
func (r *entryRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.TimeEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := date.Format("2006-01-02")
	var entries []attendance.TimeEntry
	for _, entry := range r.store.entries {
		if entry.Date.Format("2006-01-02") == day {
			entries = append(entries, r.withName(entry))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return nameOf(entries[i]) < nameOf(entries[j])
	})
	return entries, nil
}

// withName must be called with the store lock held.
func (r *entryRepository) withName(entry attendance.TimeEntry) attendance.TimeEntry {
	if emp, ok := r.store.employees[entry.EmployeeID]; ok {
		name := emp.Name
		entry.EmployeeName = &name
	}
	return entry
}

func nameOf(e attendance.TimeEntry) string {
	if e.EmployeeName == nil {
		return ""
	}
	return *e.EmployeeName
}

func matchesEntry(entry attendance.TimeEntry, filter attendance.EntryFilter) bool {
	day := entry.Date.Format("2006-01-02")
	if filter.EmployeeID != nil && *filter.EmployeeID != "" && entry.EmployeeID != *filter.EmployeeID {
		return false
	}
	if filter.Date != nil && *filter.Date != "" && day != *filter.Date {
		return false
	}
	// YYYY-MM-DD strings compare chronologically
	if filter.StartDate != nil && *filter.StartDate != "" && day < *filter.StartDate {
		return false
	}
	if filter.EndDate != nil && *filter.EndDate != "" && day > *filter.EndDate {
		return false
	}
	if filter.Status != nil && *filter.Status != "" && string(entry.Status) != *filter.Status {
		return false
	}
	return true
}

func sortEntries(entries []attendance.TimeEntry, sortBy string, asc bool) {
	less := func(a, b attendance.TimeEntry) bool {
		switch sortBy {
		case "clock_in":
			return timeOrZero(a.ClockIn).Before(timeOrZero(b.ClockIn))
		case "clock_out":
			return timeOrZero(a.ClockOut).Before(timeOrZero(b.ClockOut))
		case "total_hours":
			return a.TotalHours < b.TotalHours
		case "status":
			return a.Status < b.Status
		default:
			return a.Date.Before(b.Date)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if less(a, b) {
			return asc
		}
		if less(b, a) {
			return !asc
		}
		return a.EmployeeID < b.EmployeeID
	})
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type balanceRepository struct {
	store *Store
}

// Get implements attendance.BalanceRepository.
func (r *balanceRepository) Get(ctx context.Context, employeeID string) (float64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.balances[employeeID], nil
}

// Set implements attendance.BalanceRepository.
func (r *balanceRepository) Set(ctx context.Context, employeeID string, balance float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.balances[employeeID] = balance
	return nil
}
