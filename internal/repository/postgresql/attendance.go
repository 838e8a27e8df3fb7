package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/pkg/database"
)

const entryColumns = `
	t.id, t.employee_id, t.date, t.cycle,
	t.clock_in, t.lunch_out, t.lunch_in, t.clock_out,
	t.total_hours, t.overtime_hours, t.opening_balance, t.accumulated_balance,
	t.status, t.created_at, t.updated_at,
	e.name AS employee_name
`

type entryRepository struct {
	db *database.DB
}

func NewEntryRepository(db *database.DB) attendance.EntryRepository {
	return &entryRepository{db: db}
}

func scanEntry(row pgx.Row) (attendance.TimeEntry, error) {
	var entry attendance.TimeEntry
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.Date, &entry.Cycle,
		&entry.ClockIn, &entry.LunchOut, &entry.LunchIn, &entry.ClockOut,
		&entry.TotalHours, &entry.OvertimeHours, &entry.OpeningBalance, &entry.AccumulatedBalance,
		&entry.Status, &entry.CreatedAt, &entry.UpdatedAt,
		&entry.EmployeeName,
	)
	return entry, err
}

// Lock implements attendance.EntryRepository.
func (r *entryRepository) Lock(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	// Released when the surrounding transaction ends
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID); err != nil {
		return fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	return nil
}

// GetByEmployeeAndDate implements attendance.EntryRepository.
func (r *entryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + `
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.employee_id = $1 AND t.date = $2
	`

	entry, err := scanEntry(q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time entry by employee and date: %w", err)
	}

	return &entry, nil
}

// Save implements attendance.EntryRepository.
func (r *entryRepository) Save(ctx context.Context, entry attendance.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			id, employee_id, date, cycle,
			clock_in, lunch_out, lunch_in, clock_out,
			total_hours, overtime_hours, opening_balance, accumulated_balance,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			cycle = EXCLUDED.cycle,
			clock_in = EXCLUDED.clock_in,
			lunch_out = EXCLUDED.lunch_out,
			lunch_in = EXCLUDED.lunch_in,
			clock_out = EXCLUDED.clock_out,
			total_hours = EXCLUDED.total_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			opening_balance = EXCLUDED.opening_balance,
			accumulated_balance = EXCLUDED.accumulated_balance,
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.Date.Format("2006-01-02"),
		entry.Cycle,
		entry.ClockIn,
		entry.LunchOut,
		entry.LunchIn,
		entry.ClockOut,
		entry.TotalHours,
		entry.OvertimeHours,
		entry.OpeningBalance,
		entry.AccumulatedBalance,
		entry.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to save time entry %s: %w", entry.ID, err)
	}

	return nil
}

// List implements attendance.EntryRepository.
func (r *entryRepository) List(ctx context.Context, filter attendance.EntryFilter) ([]attendance.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND t.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Date filter
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND t.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND t.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM time_entries t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	// Build ORDER BY
	orderByField := "t.date"
	switch filter.SortBy {
	case "clock_in":
		orderByField = "t.clock_in"
	case "clock_out":
		orderByField = "t.clock_out"
	case "total_hours":
		orderByField = "t.total_hours"
	case "status":
		orderByField = "t.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE %s
		ORDER BY %s %s, t.employee_id
		LIMIT $%d OFFSET $%d
	`, entryColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, total, nil
}

// ListByDate implements attendance.EntryRepository.
func (r *entryRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + `
		FROM time_entries t
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE t.date = $1
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries by date: %w", err)
	}
	defer rows.Close()

	var entries []attendance.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type balanceRepository struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) attendance.BalanceRepository {
	return &balanceRepository{db: db}
}

// Get implements attendance.BalanceRepository.
func (r *balanceRepository) Get(ctx context.Context, employeeID string) (float64, error) {
	q := GetQuerier(ctx, r.db)

	var balance float64
	err := q.QueryRow(ctx, `SELECT balance FROM hour_balances WHERE employee_id = $1`, employeeID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance of employee %s: %w", employeeID, err)
	}

	return balance, nil
}

// Set implements attendance.BalanceRepository.
func (r *balanceRepository) Set(ctx context.Context, employeeID string, balance float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hour_balances (employee_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (employee_id) DO UPDATE SET balance = EXCLUDED.balance, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, employeeID, balance); err != nil {
		return fmt.Errorf("failed to set balance of employee %s: %w", employeeID, err)
	}

	return nil
}
