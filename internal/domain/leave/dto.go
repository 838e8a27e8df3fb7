package leave

import (
	"strings"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateLeaveRequestRequest struct {
	// Only admins may file for another employee
	EmployeeID  *string `json:"employee_id,omitempty"`
	RequestType string  `json:"request_type"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	r.RequestType = strings.ToLower(strings.TrimSpace(r.RequestType))

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if !RequestType(r.RequestType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "request_type", Message: "request_type must be vacation or justification"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}
	if RequestType(r.RequestType) == TypeVacation {
		errs = append(errs, validateDates(r.StartDate, r.EndDate)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the parsed date range. Justifications have none.
func (r CreateLeaveRequestRequest) Period() (*time.Time, *time.Time) {
	if RequestType(r.RequestType) != TypeVacation {
		return nil, nil
	}
	return parseDate(r.StartDate), parseDate(r.EndDate)
}

// UpdateLeaveRequestRequest only touches the fields that are present.
type UpdateLeaveRequestRequest struct {
	ID          string  `json:"-"`
	RequestType *string `json:"request_type,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if r.RequestType != nil {
		requestType := strings.ToLower(strings.TrimSpace(*r.RequestType))
		r.RequestType = &requestType
		if !RequestType(requestType).IsValid() {
			errs = append(errs, validator.ValidationError{Field: "request_type", Message: "request_type must be vacation or justification"})
		}
	}
	if r.Description != nil && validator.IsEmpty(*r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description cannot be empty"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be formatted as YYYY-MM-DD"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be formatted as YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the present fields into req. The date range is dropped when
// the request becomes a justification.
func (r UpdateLeaveRequestRequest) Apply(req *LeaveRequest) {
	if r.RequestType != nil {
		req.Type = RequestType(*r.RequestType)
	}
	if r.Description != nil {
		req.Description = strings.TrimSpace(*r.Description)
	}
	if r.StartDate != nil {
		req.StartDate = parseDate(r.StartDate)
	}
	if r.EndDate != nil {
		req.EndDate = parseDate(r.EndDate)
	}
	if req.Type == TypeJustification {
		req.StartDate = nil
		req.EndDate = nil
	}
}

// ValidatePeriod checks the date range of a vacation after an edit.
func ValidatePeriod(req LeaveRequest) error {
	if req.Type != TypeVacation {
		return nil
	}

	var errs validator.ValidationErrors
	if req.StartDate == nil {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required for vacations"})
	}
	if req.EndDate == nil {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required for vacations"})
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDates(start, end *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	var startDate, endDate time.Time
	var startOK, endOK bool
	if start == nil || validator.IsEmpty(*start) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required for vacations"})
	} else if startDate, startOK = validator.IsValidDate(*start); !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be formatted as YYYY-MM-DD"})
	}
	if end == nil || validator.IsEmpty(*end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required for vacations"})
	} else if endDate, endOK = validator.IsValidDate(*end); !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be formatted as YYYY-MM-DD"})
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	return errs
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

type RejectLeaveRequestRequest struct {
	ID     string  `json:"-"`
	Reason *string `json:"reason,omitempty"`
}

func (r *RejectLeaveRequestRequest) Validate() error {
	if !validator.IsValidUUID(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	RequestType *string `json:"request_type,omitempty"`
	Status      *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if f.RequestType != nil && !RequestType(*f.RequestType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "request_type", Message: "request_type must be vacation or justification"})
	}
	if f.Status != nil && !RequestStatus(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be pending, approved or rejected"})
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	RequestType     string  `json:"request_type"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Showing    string                 `json:"showing"`
	Requests   []LeaveRequestResponse `json:"requests"`
}
