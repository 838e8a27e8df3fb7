package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/dashboard"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/pkg/clock"
)

type DashboardServiceImpl struct {
	entries   attendance.EntryRepository
	employees employee.EmployeeRepository
	workHours settings.Provider
	clock     clock.Clock
	loc       *time.Location
}

func NewDashboardService(
	entryRepo attendance.EntryRepository,
	employeeRepo employee.EmployeeRepository,
	workHours settings.Provider,
	clk clock.Clock,
	loc *time.Location,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardServiceImpl{
		entries:   entryRepo,
		employees: employeeRepo,
		workHours: workHours,
		clock:     clk,
		loc:       loc,
	}
}

// formatHours renders fractional hours as "7h 30m".
func formatHours(hours float64) string {
	h := math.Floor(hours)
	m := math.Floor((hours - h) * 60)
	return fmt.Sprintf("%dh %dm", int(h), int(m))
}

// GetDashboard loads today's entries, the directory and the work hours in
// parallel and projects every entry at the current time.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	now := s.clock.Now().In(s.loc)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, s.loc)

	var (
		entries   []attendance.TimeEntry
		employees []employee.Employee
		wh        settings.WorkHours
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		entries, err = s.entries.ListByDate(gCtx, today)
		if err != nil {
			return fmt.Errorf("failed to list today's entries: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		employees, err = s.employees.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		wh, err = s.workHours.WorkHours(gCtx)
		if err != nil {
			return fmt.Errorf("failed to get work hours: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	resp := &dashboard.DashboardResponse{
		Date:            today.Format("2006-01-02"),
		ActiveEmployees: []dashboard.ActiveEmployeeRow{},
		HoursWorked:     []dashboard.HoursWorkedRow{},
		PresentToday:    []dashboard.PresentRow{},
		Overtime:        []dashboard.OvertimeRow{},
		UpdatedAt:       now.Format(time.RFC3339),
	}

	var totalHours, totalOvertime float64
	for _, entry := range entries {
		emp, ok := byID[entry.EmployeeID]
		if !ok {
			continue
		}
		p := attendance.Project(entry, wh.DailyHours, now)
		status := string(entry.Status)

		totalHours += p.TotalHours
		totalOvertime += p.OvertimeHours

		if entry.Status.IsWorking() {
			resp.ActiveEmployees = append(resp.ActiveEmployees, dashboard.ActiveEmployeeRow{
				EmployeeID: emp.ID,
				Name:       emp.Name,
				Role:       emp.Role,
				Status:     status,
			})
		}
		if entry.ClockIn != nil {
			resp.PresentToday = append(resp.PresentToday, dashboard.PresentRow{
				EmployeeID: emp.ID,
				Name:       emp.Name,
				ClockIn:    entry.ClockIn.In(s.loc).Format("15:04"),
				Status:     status,
			})
		}
		if p.TotalHours > 0 {
			resp.HoursWorked = append(resp.HoursWorked, dashboard.HoursWorkedRow{
				EmployeeID: emp.ID,
				Name:       emp.Name,
				Hours:      formatHours(p.TotalHours),
				TotalHours: p.TotalHours,
				Status:     status,
			})
		}
		if p.OvertimeHours > 0 {
			balance := "positive"
			if p.AccumulatedBalance < 0 {
				balance = "negative"
			}
			resp.Overtime = append(resp.Overtime, dashboard.OvertimeRow{
				EmployeeID:    emp.ID,
				Name:          emp.Name,
				Overtime:      formatHours(p.OvertimeHours),
				OvertimeHours: p.OvertimeHours,
				Balance:       balance,
			})
		}
	}

	resp.Metrics = dashboard.MetricsSummary{
		ActiveEmployees:  len(resp.ActiveEmployees),
		PresentToday:     len(resp.PresentToday),
		TotalHoursWorked: int(math.Floor(totalHours)),
		OvertimeHours:    int(math.Floor(totalOvertime)),
	}

	return resp, nil
}
