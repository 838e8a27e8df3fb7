package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/pkg/clock"
	"github.com/tempreco/ponto-backend-go/internal/pkg/logger"
	"github.com/tempreco/ponto-backend-go/internal/repository/memory"
)

const (
	joaoID  = "0190a1b2-0000-7000-8000-000000000001"
	mariaID = "0190a1b2-0000-7000-8000-000000000002"
)

var loc = time.FixedZone("BRT", -3*60*60)

type fixedHours float64

func (f fixedHours) WorkHours(ctx context.Context) (settings.WorkHours, error) {
	return settings.WorkHours{DailyHours: float64(f)}, nil
}

type testEnv struct {
	svc   attendance.AttendanceService
	store *memory.Store
	clock *clock.Manual
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	for id, name := range map[string]string{joaoID: "João Silva", mariaID: "Maria Santos"} {
		_, err := store.Employees().Create(context.Background(), employee.Employee{
			ID: id, Name: name, Email: id + "@tempreco.com", Role: "Vendedor", Department: "Vendas", Age: 30, Gender: employee.Male,
		})
		require.NoError(t, err)
	}

	clk := clock.NewManual(at(2024, 3, 4, 8, 0))
	svc := NewAttendanceService(
		store.Entries(), store.Balances(), store.Employees(),
		fixedHours(8), store.TxManager(), clk, loc, logger.Discard(),
	)
	return &testEnv{svc: svc, store: store, clock: clk}
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

// do moves the clock to hh:mm of the current day and runs op.
func (e *testEnv) do(t *testing.T, hh, mm int, op func(context.Context, string) (attendance.TimeEntryResponse, error)) attendance.TimeEntryResponse {
	t.Helper()
	now := e.clock.Now()
	e.clock.Set(time.Date(now.Year(), now.Month(), now.Day(), hh, mm, 0, 0, loc))
	resp, err := op(context.Background(), joaoID)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) balance(t *testing.T) float64 {
	t.Helper()
	b, err := e.svc.Balance(context.Background(), joaoID)
	require.NoError(t, err)
	return b.Balance
}

func TestFullDayWithLunch(t *testing.T) {
	env := newTestEnv(t)

	in := env.do(t, 8, 0, env.svc.ClockIn)
	assert.Equal(t, attendance.StatusClockedIn, in.Status)
	assert.Equal(t, 1, in.Cycle)
	assert.Equal(t, "2024-03-04", in.Date)
	require.NotNil(t, in.ClockIn)
	assert.Equal(t, "08:00", *in.ClockIn)
	assert.Equal(t, "João Silva", *in.EmployeeName)

	env.do(t, 12, 0, env.svc.LunchOut)
	env.do(t, 13, 0, env.svc.LunchIn)
	out := env.do(t, 17, 0, env.svc.ClockOut)

	assert.Equal(t, attendance.StatusClockedOut, out.Status)
	assert.InDelta(t, 8, out.TotalHours, 1e-9)
	assert.InDelta(t, 0, out.DailyBalance, 1e-9)
	assert.InDelta(t, 0, out.OvertimeHours, 1e-9)
	assert.Equal(t, "12:00", *out.LunchOut)
	assert.Equal(t, "13:00", *out.LunchIn)
	assert.Equal(t, "17:00", *out.ClockOut)
	assert.InDelta(t, 0, env.balance(t), 1e-9)
}

func TestNoLunchOvertime(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, 8, 0, env.svc.ClockIn)
	out := env.do(t, 18, 0, env.svc.ClockOut)

	assert.InDelta(t, 10, out.TotalHours, 1e-9)
	assert.InDelta(t, 2, out.DailyBalance, 1e-9)
	assert.InDelta(t, 2, out.OvertimeHours, 1e-9)
	assert.InDelta(t, 2, out.AccumulatedBalance, 1e-9)
	assert.InDelta(t, 2, env.balance(t), 1e-9)
}

func TestLunchInBeforeLunchOut_Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.do(t, 8, 0, env.svc.ClockIn)

	env.clock.Set(at(2024, 3, 4, 12, 0))
	_, err := env.svc.LunchIn(ctx, joaoID)

	var gv *attendance.GuardViolation
	require.True(t, errors.As(err, &gv))
	assert.ErrorIs(t, err, attendance.ErrLunchNotStarted)
	assert.Equal(t, attendance.StatusClockedIn, gv.Status)

	today, err := env.svc.Today(ctx, joaoID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedIn, today.Status)
	assert.Nil(t, today.LunchIn)
}

func TestClockOutDuringLunch_Rejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.do(t, 8, 0, env.svc.ClockIn)
	env.do(t, 12, 0, env.svc.LunchOut)

	env.clock.Set(at(2024, 3, 4, 12, 30))
	_, err := env.svc.ClockOut(ctx, joaoID)
	assert.ErrorIs(t, err, attendance.ErrLunchNotEnded)

	today, err := env.svc.Today(ctx, joaoID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLunchBreak, today.Status)
	assert.Nil(t, today.ClockOut)
	assert.InDelta(t, 0, env.balance(t), 1e-9)
}

func TestConsecutiveDays_CarryBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// day 1 finishes one hour over target
	env.do(t, 8, 0, env.svc.ClockIn)
	env.do(t, 17, 0, env.svc.ClockOut)
	require.InDelta(t, 1, env.balance(t), 1e-9)

	// day 2 is exactly on target
	env.clock.Set(at(2024, 3, 5, 8, 0))
	env.do(t, 8, 0, env.svc.ClockIn)

	env.clock.Set(at(2024, 3, 5, 16, 0))
	live, err := env.svc.Live(ctx, joaoID)
	require.NoError(t, err)
	assert.InDelta(t, 0, live.DailyBalance, 1e-9)
	assert.InDelta(t, 1, live.OvertimeHours, 1e-9)

	out := env.do(t, 16, 0, env.svc.ClockOut)
	assert.InDelta(t, 0, out.DailyBalance, 1e-9)
	assert.InDelta(t, 1, out.AccumulatedBalance, 1e-9)
	assert.InDelta(t, 1, env.balance(t), 1e-9)
}

func TestFinalizedDay_RecomputeDoesNotDoubleCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.do(t, 8, 0, env.svc.ClockIn)
	env.do(t, 18, 0, env.svc.ClockOut)

	for i := 0; i < 3; i++ {
		env.clock.Advance(time.Hour)
		today, err := env.svc.Today(ctx, joaoID)
		require.NoError(t, err)
		assert.InDelta(t, 2, today.AccumulatedBalance, 1e-9)
		assert.InDelta(t, 10, today.TotalHours, 1e-9)
	}
	assert.InDelta(t, 2, env.balance(t), 1e-9)
}

// targetHours is a work hours provider whose daily target can change mid-test.
type targetHours struct{ daily float64 }

func (h *targetHours) WorkHours(ctx context.Context) (settings.WorkHours, error) {
	return settings.WorkHours{DailyHours: h.daily}, nil
}

func TestFinalizedDay_KeepsFiguresAfterTargetChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	target := &targetHours{daily: 8}
	env.svc = NewAttendanceService(
		env.store.Entries(), env.store.Balances(), env.store.Employees(),
		target, env.store.TxManager(), env.clock, loc, logger.Discard(),
	)

	env.do(t, 8, 0, env.svc.ClockIn)
	env.do(t, 18, 0, env.svc.ClockOut)

	target.daily = 6
	env.clock.Set(at(2024, 3, 4, 19, 0))

	today, err := env.svc.Today(ctx, joaoID)
	require.NoError(t, err)
	assert.InDelta(t, 10, today.TotalHours, 1e-9)
	assert.InDelta(t, 2, today.DailyBalance, 1e-9)
	assert.InDelta(t, 2, today.AccumulatedBalance, 1e-9)

	history, err := env.svc.History(ctx, joaoID, attendance.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.InDelta(t, 2, history.Entries[0].DailyBalance, 1e-9)
	assert.InDelta(t, 2, history.Entries[0].AccumulatedBalance, 1e-9)

	live, err := env.svc.Live(ctx, joaoID)
	require.NoError(t, err)
	assert.InDelta(t, 2, live.DailyBalance, 1e-9)
	assert.InDelta(t, 10, live.TotalHours, 1e-9)

	assert.InDelta(t, 2, env.balance(t), 1e-9)
}

func TestReentry_StartsNewCycle(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, 8, 0, env.svc.ClockIn)
	env.do(t, 12, 0, env.svc.LunchOut)
	env.do(t, 13, 0, env.svc.LunchIn)
	env.do(t, 17, 0, env.svc.ClockOut)

	again := env.do(t, 19, 0, env.svc.ClockIn)
	assert.Equal(t, attendance.StatusClockedIn, again.Status)
	assert.Equal(t, 2, again.Cycle)
	assert.Equal(t, "19:00", *again.ClockIn)
	assert.Nil(t, again.LunchOut)
	assert.Nil(t, again.LunchIn)
	assert.Nil(t, again.ClockOut)

	// the second cycle starts from the balance the first one left
	out := env.do(t, 21, 0, env.svc.ClockOut)
	assert.InDelta(t, 2, out.TotalHours, 1e-9)
	assert.InDelta(t, -6, out.AccumulatedBalance, 1e-9)
	assert.InDelta(t, -6, env.balance(t), 1e-9)
}

func TestClockInTwice_Rejected(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, 8, 0, env.svc.ClockIn)

	_, err := env.svc.ClockIn(context.Background(), joaoID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestUnknownEmployee(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ClockIn(context.Background(), "0190a1b2-0000-7000-8000-00000000ffff")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestToday_NotStartedIsNotPersisted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.Balances().Set(ctx, joaoID, 1.5))

	today, err := env.svc.Today(ctx, joaoID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNotStarted, today.Status)
	assert.Equal(t, 1.5, today.AccumulatedBalance)
	assert.Zero(t, today.TotalHours)

	stored, err := env.store.Entries().GetByEmployeeAndDate(ctx, joaoID, at(2024, 3, 4, 0, 0))
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestToday_LiveLunchIsDeducted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.do(t, 8, 0, env.svc.ClockIn)
	env.do(t, 12, 0, env.svc.LunchOut)

	env.clock.Set(at(2024, 3, 4, 12, 40))
	today, err := env.svc.Today(ctx, joaoID)
	require.NoError(t, err)
	assert.InDelta(t, 4, today.TotalHours, 1e-9)
	assert.InDelta(t, -4, today.DailyBalance, 1e-9)
	assert.Zero(t, today.OvertimeHours)
}

func TestTimesAreMinuteResolution(t *testing.T) {
	env := newTestEnv(t)
	env.clock.Set(time.Date(2024, 3, 4, 8, 0, 59, 999, loc))

	resp, err := env.svc.ClockIn(context.Background(), joaoID)
	require.NoError(t, err)
	assert.Equal(t, "08:00", *resp.ClockIn)

	stored, err := env.store.Entries().GetByEmployeeAndDate(context.Background(), joaoID, at(2024, 3, 4, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, stored.ClockIn.Second())
}

func TestHistoryAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for d := 4; d <= 6; d++ {
		env.clock.Set(at(2024, 3, d, 8, 0))
		env.do(t, 8, 0, env.svc.ClockIn)
		env.do(t, 17, 0, env.svc.ClockOut)
	}
	env.clock.Set(at(2024, 3, 6, 9, 0))
	_, err := env.svc.ClockIn(ctx, mariaID)
	require.NoError(t, err)

	history, err := env.svc.History(ctx, joaoID, attendance.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), history.TotalCount)
	assert.Equal(t, 2, history.TotalPages)
	assert.Equal(t, "1-2 of 3", history.Showing)
	require.Len(t, history.Entries, 2)
	assert.Equal(t, "2024-03-06", history.Entries[0].Date)
	assert.InDelta(t, 1, history.Entries[0].DailyBalance, 1e-9)
	assert.InDelta(t, 3, history.Entries[0].AccumulatedBalance, 1e-9)

	start, end := "2024-03-05", "2024-03-06"
	list, err := env.svc.List(ctx, attendance.EntryFilter{StartDate: &start, EndDate: &end, SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.TotalCount)
	assert.Equal(t, 20, list.Limit)

	open := "clocked-in"
	list, err = env.svc.List(ctx, attendance.EntryFilter{Status: &open})
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, mariaID, list.Entries[0].EmployeeID)
	// open entries are projected at now
	env.clock.Set(at(2024, 3, 6, 10, 0))
	list, err = env.svc.List(ctx, attendance.EntryFilter{Status: &open})
	require.NoError(t, err)
	assert.InDelta(t, 1, list.Entries[0].TotalHours, 1e-9)

	empty, err := env.svc.History(ctx, mariaID, attendance.HistoryFilter{Date: strPtr("2020-01-01")})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", empty.Showing)
}

func TestList_InvalidFilter(t *testing.T) {
	env := newTestEnv(t)

	bad := "not-a-uuid"
	_, err := env.svc.List(context.Background(), attendance.EntryFilter{EmployeeID: &bad})
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
