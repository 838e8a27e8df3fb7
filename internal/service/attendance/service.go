package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	entries   attendance.EntryRepository
	balances  attendance.BalanceRepository
	employees employee.EmployeeRepository
	workHours settings.Provider
	tx        attendance.TxManager
	clock     clock.Clock
	loc       *time.Location
	logger    *slog.Logger
}

func NewAttendanceService(
	entryRepo attendance.EntryRepository,
	balanceRepo attendance.BalanceRepository,
	employeeRepo employee.EmployeeRepository,
	workHours settings.Provider,
	tx attendance.TxManager,
	clk clock.Clock,
	loc *time.Location,
	logger *slog.Logger,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		entries:   entryRepo,
		balances:  balanceRepo,
		employees: employeeRepo,
		workHours: workHours,
		tx:        tx,
		clock:     clk,
		loc:       loc,
		logger:    logger,
	}
}

// now returns the current time in the service timezone at minute resolution.
func (a *AttendanceServiceImpl) now() time.Time {
	return a.clock.Now().In(a.loc).Truncate(time.Minute)
}

func (a *AttendanceServiceImpl) dateOf(t time.Time) time.Time {
	y, m, d := t.In(a.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.loc)
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.TimeEntryResponse, error) {
	return a.transition(ctx, attendance.OpClockIn, employeeID)
}

// LunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) LunchOut(ctx context.Context, employeeID string) (attendance.TimeEntryResponse, error) {
	return a.transition(ctx, attendance.OpLunchOut, employeeID)
}

// LunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) LunchIn(ctx context.Context, employeeID string) (attendance.TimeEntryResponse, error) {
	return a.transition(ctx, attendance.OpLunchIn, employeeID)
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.TimeEntryResponse, error) {
	return a.transition(ctx, attendance.OpClockOut, employeeID)
}

// transition runs guard, mutation, recomputation and persistence of one
// clock operation as a single unit of work.
func (a *AttendanceServiceImpl) transition(ctx context.Context, op attendance.Operation, employeeID string) (attendance.TimeEntryResponse, error) {
	emp, err := a.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	wh, err := a.workHours.WorkHours(ctx)
	if err != nil {
		return attendance.TimeEntryResponse{}, fmt.Errorf("failed to get work hours: %w", err)
	}

	now := a.now()
	date := a.dateOf(now)

	var (
		updated    attendance.TimeEntry
		projection attendance.Projection
	)
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.entries.Lock(ctx, employeeID); err != nil {
			return err
		}

		current, err := a.entries.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return fmt.Errorf("failed to get today's entry: %w", err)
		}

		var entry attendance.TimeEntry
		if current != nil {
			entry = *current
		} else {
			entry = attendance.NewTimeEntry(employeeID, date, 0)
		}

		var opening float64
		if op == attendance.OpClockIn {
			if opening, err = a.balances.Get(ctx, employeeID); err != nil {
				return fmt.Errorf("failed to get balance: %w", err)
			}
		}

		updated, err = attendance.Transition(op, entry, now, opening)
		if err != nil {
			return err
		}

		projection = attendance.Project(updated, wh.DailyHours, now)
		projection.Apply(&updated)

		if err := a.entries.Save(ctx, updated); err != nil {
			return err
		}

		if balance, finalized := attendance.Finalize(updated, wh.DailyHours); finalized {
			if err := a.balances.Set(ctx, employeeID, balance); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	a.logger.Info("clock transition recorded",
		"operation", op,
		"employee_id", employeeID,
		"entry_id", updated.ID,
		"cycle", updated.Cycle,
		"status", updated.Status,
		"total_hours", updated.TotalHours,
	)

	name := emp.Name
	updated.EmployeeName = &name
	return a.mapEntryToResponse(updated, projection.DailyBalance), nil
}

// current loads today's entry of the employee projected at now. Days
// without an entry yield the not-started entry, which is not persisted.
func (a *AttendanceServiceImpl) current(ctx context.Context, employeeID string) (attendance.TimeEntry, attendance.Projection, error) {
	emp, err := a.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.TimeEntry{}, attendance.Projection{}, err
	}

	wh, err := a.workHours.WorkHours(ctx)
	if err != nil {
		return attendance.TimeEntry{}, attendance.Projection{}, fmt.Errorf("failed to get work hours: %w", err)
	}

	now := a.clock.Now().In(a.loc)
	date := a.dateOf(now)

	stored, err := a.entries.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.TimeEntry{}, attendance.Projection{}, fmt.Errorf("failed to get today's entry: %w", err)
	}

	var entry attendance.TimeEntry
	if stored != nil {
		entry = *stored
	} else {
		balance, err := a.balances.Get(ctx, employeeID)
		if err != nil {
			return attendance.TimeEntry{}, attendance.Projection{}, fmt.Errorf("failed to get balance: %w", err)
		}
		entry = attendance.NewTimeEntry(employeeID, date, balance)
	}

	name := emp.Name
	entry.EmployeeName = &name

	// A finalized day keeps the figures it was closed with, even after the
	// daily target changes.
	if entry.IsFinalized() {
		return entry, attendance.Projection{
			TotalHours:         entry.TotalHours,
			DailyBalance:       entry.AccumulatedBalance - entry.OpeningBalance,
			OvertimeHours:      entry.OvertimeHours,
			AccumulatedBalance: entry.AccumulatedBalance,
		}, nil
	}

	projection := attendance.Project(entry, wh.DailyHours, now)
	projection.Apply(&entry)
	return entry, projection, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.TimeEntryResponse, error) {
	entry, projection, err := a.current(ctx, employeeID)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}
	return a.mapEntryToResponse(entry, projection.DailyBalance), nil
}

// Live implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Live(ctx context.Context, employeeID string) (attendance.LiveHours, error) {
	entry, projection, err := a.current(ctx, employeeID)
	if err != nil {
		return attendance.LiveHours{}, err
	}

	return attendance.LiveHours{
		EmployeeID:    employeeID,
		Status:        entry.Status,
		TotalHours:    projection.TotalHours,
		DailyBalance:  projection.DailyBalance,
		OvertimeHours: projection.OvertimeHours,
		At:            a.clock.Now().In(a.loc).Format(time.RFC3339),
	}, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, employeeID string, filter attendance.HistoryFilter) (attendance.ListTimeEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}
	if _, err := a.employees.GetByID(ctx, employeeID); err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}

	return a.list(ctx, filter.ToEntryFilter(employeeID))
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.EntryFilter) (attendance.ListTimeEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}

	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.EntryFilter) (attendance.ListTimeEntryResponse, error) {
	entries, total, err := a.entries.List(ctx, filter)
	if err != nil {
		return attendance.ListTimeEntryResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	wh, err := a.workHours.WorkHours(ctx)
	if err != nil {
		return attendance.ListTimeEntryResponse{}, fmt.Errorf("failed to get work hours: %w", err)
	}
	now := a.clock.Now().In(a.loc)

	// Map to response
	responses := make([]attendance.TimeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		var daily float64
		if entry.IsFinalized() {
			daily = entry.AccumulatedBalance - entry.OpeningBalance
		} else {
			p := attendance.Project(entry, wh.DailyHours, now)
			p.Apply(&entry)
			daily = p.DailyBalance
		}
		responses = append(responses, a.mapEntryToResponse(entry, daily))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListTimeEntryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Entries:    responses,
	}, nil
}

// Balance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Balance(ctx context.Context, employeeID string) (attendance.BalanceResponse, error) {
	if _, err := a.employees.GetByID(ctx, employeeID); err != nil {
		return attendance.BalanceResponse{}, err
	}

	balance, err := a.balances.Get(ctx, employeeID)
	if err != nil {
		return attendance.BalanceResponse{}, fmt.Errorf("failed to get balance: %w", err)
	}

	return attendance.BalanceResponse{EmployeeID: employeeID, Balance: balance}, nil
}

// clockMark renders a clock mark as HH:MM in the service timezone.
func (a *AttendanceServiceImpl) clockMark(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.In(a.loc).Format("15:04")
	return &format
}

func (a *AttendanceServiceImpl) mapEntryToResponse(entry attendance.TimeEntry, dailyBalance float64) attendance.TimeEntryResponse {
	return attendance.TimeEntryResponse{
		ID:                 entry.ID,
		EmployeeID:         entry.EmployeeID,
		EmployeeName:       entry.EmployeeName,
		Date:               entry.Date.Format("2006-01-02"),
		Cycle:              entry.Cycle,
		ClockIn:            a.clockMark(entry.ClockIn),
		LunchOut:           a.clockMark(entry.LunchOut),
		LunchIn:            a.clockMark(entry.LunchIn),
		ClockOut:           a.clockMark(entry.ClockOut),
		TotalHours:         entry.TotalHours,
		DailyBalance:       dailyBalance,
		OvertimeHours:      entry.OvertimeHours,
		AccumulatedBalance: entry.AccumulatedBalance,
		Status:             entry.Status,
	}
}
