package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/repository/postgresql"
)

func createEmployee(t *testing.T, repo employee.EmployeeRepository, name, email string) employee.Employee {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)

	emp, err := repo.Create(context.Background(), employee.Employee{
		ID:         id.String(),
		Name:       name,
		Email:      email,
		Role:       "Analyst",
		Department: "TI",
		Age:        30,
		Gender:     employee.Female,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	ana := createEmployee(t, repo, "Ana Lima", "ana@tempreco.com")
	createEmployee(t, repo, "João Silva", "joao@tempreco.com")

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Lima", got.Name)
		assert.Equal(t, employee.Female, got.Gender)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("email exists", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "ANA@tempreco.com", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "ana@tempreco.com", &ana.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update", func(t *testing.T) {
		ana.Department = "RH"
		require.NoError(t, repo.Update(ctx, ana))

		got, err := repo.GetByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, "RH", got.Department)
	})

	t.Run("list with search", func(t *testing.T) {
		search := "joão"
		list, total, err := repo.List(ctx, employee.EmployeeFilter{Search: &search, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "João Silva", list[0].Name)
	})
}

func TestEntryRepository_SaveAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	entries := postgresql.NewEntryRepository(setup.DB)
	tx := postgresql.NewTxManager(setup.DB)

	emp := createEmployee(t, employees, "Maria Santos", "maria@tempreco.com")
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	got, err := entries.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	assert.Nil(t, got)

	clockIn := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	entry := attendance.NewTimeEntry(emp.ID, day, 1.5)
	entry.Cycle = 1
	entry.ClockIn = &clockIn
	entry.Status = attendance.StatusClockedIn

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := entries.Lock(ctx, emp.ID); err != nil {
			return err
		}
		return entries.Save(ctx, entry)
	})
	require.NoError(t, err)

	got, err = entries.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusClockedIn, got.Status)
	assert.True(t, clockIn.Equal(*got.ClockIn))
	assert.Equal(t, 1.5, got.OpeningBalance)
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Maria Santos", *got.EmployeeName)

	// upsert keeps one row per employee and day
	clockOut := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)
	entry.ClockOut = &clockOut
	entry.Status = attendance.StatusClockedOut
	require.NoError(t, entries.Save(ctx, entry))

	list, total, err := entries.List(ctx, attendance.EntryFilter{EmployeeID: &emp.ID, Page: 1, Limit: 20, SortBy: "date", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, attendance.StatusClockedOut, list[0].Status)

	byDate, err := entries.ListByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, byDate, 1)
}

func TestTxManager_RollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	balances := postgresql.NewBalanceRepository(setup.DB)
	tx := postgresql.NewTxManager(setup.DB)

	emp := createEmployee(t, employees, "Pedro Costa", "pedro@tempreco.com")
	require.NoError(t, balances.Set(ctx, emp.ID, 2))

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := balances.Set(ctx, emp.ID, 5); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	balance, err := balances.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, balance)
}

func TestBalanceRepository_DefaultsToZero(t *testing.T) {
	setup := NewTestDatabase(t)
	balances := postgresql.NewBalanceRepository(setup.DB)

	balance, err := balances.Get(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestSettingsRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewSettingsRepository(setup.DB)

	_, err := repo.GetWorkHours(ctx)
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)

	wh := settings.WorkHours{
		DailyHours:           6,
		LunchDurationMinutes: 30,
		WeeklyHours:          30,
		WorkingDays:          []time.Weekday{time.Monday, time.Wednesday},
		StartTime:            "09:00",
		LunchStart:           "12:00",
		LunchEnd:             "12:30",
		EndTime:              "15:30",
	}
	require.NoError(t, repo.SaveWorkHours(ctx, wh))

	got, err := repo.GetWorkHours(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got.DailyHours)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, got.WorkingDays)
	assert.Equal(t, "12:30", got.LunchEnd)
}
