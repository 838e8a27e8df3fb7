package leave

import "time"

type RequestType string

const (
	TypeVacation      RequestType = "vacation"
	TypeJustification RequestType = "justification"
)

func (t RequestType) IsValid() bool {
	return t == TypeVacation || t == TypeJustification
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// LeaveRequest is a vacation or absence justification filed for an
// employee. Only vacations carry a date range.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Type       RequestType

	StartDate *time.Time
	EndDate   *time.Time

	Description string
	Status      RequestStatus
	CreatedBy   string

	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined from employees
	EmployeeName *string
}

func (r LeaveRequest) IsPending() bool {
	return r.Status == StatusPending
}
