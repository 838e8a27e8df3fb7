package dashboard

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	Date    string         `json:"date"` // Format: "YYYY-MM-DD"
	Metrics MetricsSummary `json:"metrics"`

	ActiveEmployees []ActiveEmployeeRow `json:"active_employees"`
	HoursWorked     []HoursWorkedRow    `json:"hours_worked"`
	PresentToday    []PresentRow        `json:"present_today"`
	Overtime        []OvertimeRow       `json:"overtime"`
	UpdatedAt       string              `json:"updated_at"`
}

// MetricsSummary holds the four headline cards
type MetricsSummary struct {
	ActiveEmployees  int `json:"active_employees"`   // clocked-in, lunch-break or lunch-return
	PresentToday     int `json:"present_today"`      // clocked in at least once
	TotalHoursWorked int `json:"total_hours_worked"` // floor of the sum of live totals
	OvertimeHours    int `json:"overtime_hours"`     // floor of the sum of live overtime
}

type ActiveEmployeeRow struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

type HoursWorkedRow struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	Hours      string  `json:"hours"` // "7h 30m"
	TotalHours float64 `json:"total_hours"`
	Status     string  `json:"status"`
}

type PresentRow struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	ClockIn    string `json:"clock_in"` // "HH:MM"
	Status     string `json:"status"`
}

type OvertimeRow struct {
	EmployeeID    string  `json:"employee_id"`
	Name          string  `json:"name"`
	Overtime      string  `json:"overtime"` // "1h 15m"
	OvertimeHours float64 `json:"overtime_hours"`
	Balance       string  `json:"balance"` // positive / negative
}
