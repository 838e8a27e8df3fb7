package attendance

import (
	"strings"

	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

// ========================================
// TIME ENTRY DTOs
// ========================================

type TimeEntryResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       *string `json:"employee_name,omitempty"`
	Date               string  `json:"date"`
	Cycle              int     `json:"cycle"`
	ClockIn            *string `json:"clock_in,omitempty"`
	LunchOut           *string `json:"lunch_out,omitempty"`
	LunchIn            *string `json:"lunch_in,omitempty"`
	ClockOut           *string `json:"clock_out,omitempty"`
	TotalHours         float64 `json:"total_hours"`
	DailyBalance       float64 `json:"daily_balance"`
	OvertimeHours      float64 `json:"overtime_hours"`
	AccumulatedBalance float64 `json:"accumulated_balance"`
	Status             Status  `json:"status"`
}

type BalanceResponse struct {
	EmployeeID string  `json:"employee_id"`
	Balance    float64 `json:"balance"`
}

// LiveHours is the payload streamed to an employee while the day is open.
type LiveHours struct {
	EmployeeID    string  `json:"employee_id"`
	Status        Status  `json:"status"`
	TotalHours    float64 `json:"total_hours"`
	DailyBalance  float64 `json:"daily_balance"`
	OvertimeHours float64 `json:"overtime_hours"`
	At            string  `json:"at"`
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

var validStatuses = []string{
	string(StatusNotStarted),
	string(StatusClockedIn),
	string(StatusLunchBreak),
	string(StatusLunchReturn),
	string(StatusClockedOut),
}

// EntryFilter lists entries across employees (admin).
type EntryFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, clock_in, clock_out, total_hours, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EntryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	errs = append(errs, validateListParams(&f.Page, &f.Limit, f.Date, f.StartDate, f.EndDate, f.Status, &f.SortBy, &f.SortOrder)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HistoryFilter lists the entries of the authenticated employee.
type HistoryFilter struct {
	Date      *string `json:"date,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

func (f *HistoryFilter) Validate() error {
	errs := validateListParams(&f.Page, &f.Limit, f.Date, f.StartDate, f.EndDate, f.Status, &f.SortBy, &f.SortOrder)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntryFilter scopes the history filter to one employee.
func (f HistoryFilter) ToEntryFilter(employeeID string) EntryFilter {
	return EntryFilter{
		EmployeeID: &employeeID,
		Date:       f.Date,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Status:     f.Status,
		Page:       f.Page,
		Limit:      f.Limit,
		SortBy:     f.SortBy,
		SortOrder:  f.SortOrder,
	}
}

func validateListParams(page, limit *int, date, startDate, endDate, status *string, sortBy, sortOrder *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	// Page validation
	if *page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if *page == 0 {
		*page = 1
	}

	// Limit validation
	if *limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if status != nil && !validator.IsInSlice(*status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
	}

	dates := []struct {
		field string
		value *string
	}{
		{"date", date},
		{"start_date", startDate},
		{"end_date", endDate},
	}
	for _, d := range dates {
		if d.value != nil && *d.value != "" {
			if _, valid := validator.IsValidDate(*d.value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   d.field,
					Message: d.field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if startDate != nil && endDate != nil && *startDate != "" && *endDate != "" {
		start, okStart := validator.IsValidDate(*startDate)
		end, okEnd := validator.IsValidDate(*endDate)
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	// Sort validation
	if *sortBy != "" {
		validSortFields := []string{"date", "clock_in", "clock_out", "total_hours", "status"}
		if !validator.IsInSlice(*sortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, clock_in, clock_out, total_hours, status",
			})
		}
	} else {
		*sortBy = "date"
	}

	if *sortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(*sortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		*sortOrder = "desc"
	}

	return errs
}

type ListTimeEntryResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Entries    []TimeEntryResponse `json:"entries"`
}
