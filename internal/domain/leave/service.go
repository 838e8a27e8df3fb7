package leave

import "context"

// LeaveService defines business logic for vacation and justification requests
type LeaveService interface {
	// CreateRequest files a request. Employees file for themselves; admins
	// may file for anyone.
	CreateRequest(ctx context.Context, callerID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// UpdateRequest edits a pending request of the caller
	UpdateRequest(ctx context.Context, callerID string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)

	// DeleteRequest removes a request. Owners may delete while pending.
	DeleteRequest(ctx context.Context, callerID, id string) error

	// MyRequests lists the caller's requests
	MyRequests(ctx context.Context, callerID string, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// ListRequests lists requests of every employee (admin only)
	ListRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// Approve approves a pending request (admin only)
	Approve(ctx context.Context, reviewerID, id string) (LeaveRequestResponse, error)

	// Reject rejects a pending request (admin only)
	Reject(ctx context.Context, reviewerID string, req RejectLeaveRequestRequest) (LeaveRequestResponse, error)
}
