package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// Update rewrites the editable fields of a pending request.
	Update(ctx context.Context, req LeaveRequest) error

	// UpdateStatus moves a pending request to approved or rejected.
	UpdateStatus(ctx context.Context, req LeaveRequest) error

	Delete(ctx context.Context, id string) error
}
