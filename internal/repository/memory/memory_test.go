package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
)

func seedEmployee(t *testing.T, s *Store, id, name, dept string) {
	t.Helper()
	_, err := s.Employees().Create(context.Background(), employee.Employee{
		ID: id, Name: name, Email: id + "@tempreco.com", Department: dept, Age: 30, Gender: employee.Male,
	})
	require.NoError(t, err)
}

func entryOn(employeeID string, day time.Time, status attendance.Status, total float64) attendance.TimeEntry {
	e := attendance.NewTimeEntry(employeeID, day, 0)
	e.Status = status
	e.TotalHours = total
	return e
}

func TestEntryRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Entries()
	seedEmployee(t, s, "e1", "Ana Lima", "TI")
	seedEmployee(t, s, "e2", "João Silva", "RH")

	d1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	got, err := repo.GetByEmployeeAndDate(ctx, "e1", d1)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, entryOn("e1", d1, attendance.StatusClockedOut, 8)))
	require.NoError(t, repo.Save(ctx, entryOn("e1", d2, attendance.StatusClockedIn, 2)))
	require.NoError(t, repo.Save(ctx, entryOn("e2", d2, attendance.StatusClockedOut, 9)))

	t.Run("get joins employee name", func(t *testing.T) {
		got, err := repo.GetByEmployeeAndDate(ctx, "e1", d1)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.EmployeeName)
		assert.Equal(t, "Ana Lima", *got.EmployeeName)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("save replaces the same day", func(t *testing.T) {
		e := entryOn("e1", d1, attendance.StatusClockedOut, 8.5)
		require.NoError(t, repo.Save(ctx, e))
		_, total, err := repo.List(ctx, attendance.EntryFilter{EmployeeID: strPtr("e1"), Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("list filters and sorts", func(t *testing.T) {
		list, total, err := repo.List(ctx, attendance.EntryFilter{Status: strPtr("clocked-out"), Page: 1, Limit: 20, SortBy: "total_hours", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, list, 2)
		assert.Equal(t, 8.5, list[0].TotalHours)
		assert.Equal(t, 9.0, list[1].TotalHours)
	})

	t.Run("list date range and paging", func(t *testing.T) {
		list, total, err := repo.List(ctx, attendance.EntryFilter{StartDate: strPtr("2024-03-05"), EndDate: strPtr("2024-03-05"), Page: 2, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 1)
	})

	t.Run("list by date orders by name", func(t *testing.T) {
		list, err := repo.ListByDate(ctx, d2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Ana Lima", *list[0].EmployeeName)
		assert.Equal(t, "João Silva", *list[1].EmployeeName)
	})
}

func TestBalanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Balances()

	balance, err := repo.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, balance)

	require.NoError(t, repo.Set(ctx, "e1", -1.5))
	balance, err = repo.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, -1.5, balance)
}

func TestEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Employees()
	seedEmployee(t, s, "e1", "Maria Santos", "Vendas")
	seedEmployee(t, s, "e2", "Ana Lima", "TI")

	exists, err := repo.ExistsByEmail(ctx, "E1@TEMPRECO.COM", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "e1@tempreco.com", strPtr("e1"))
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Create(ctx, employee.Employee{ID: "e3", Email: "e1@tempreco.com"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana Lima", all[0].Name)

	list, total, err := repo.List(ctx, employee.EmployeeFilter{Department: strPtr("Vendas"), Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Maria Santos", list[0].Name)

	err = repo.Update(ctx, employee.Employee{ID: "missing"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSettingsRepository_CopiesDays(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Settings()

	_, err := repo.GetWorkHours(ctx)
	assert.ErrorIs(t, err, settings.ErrSettingsNotFound)

	days := []time.Weekday{time.Monday}
	require.NoError(t, repo.SaveWorkHours(ctx, settings.WorkHours{DailyHours: 6, WorkingDays: days}))
	days[0] = time.Sunday

	got, err := repo.GetWorkHours(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday}, got.WorkingDays)
}

func TestTxManager_SerializesAndNests(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tx := s.TxManager()
	balances := s.Balances()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.WithinTx(ctx, func(ctx context.Context) error {
				v, _ := balances.Get(ctx, "e1")
				return balances.Set(ctx, "e1", v+1)
			})
		}()
	}
	wg.Wait()

	v, err := balances.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	boom := errors.New("boom")
	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		return tx.WithinTx(ctx, func(ctx context.Context) error { return boom })
	})
	assert.ErrorIs(t, err, boom)
}

func strPtr(s string) *string { return &s }
