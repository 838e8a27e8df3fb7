package memory

import (
	"context"
	"sort"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/domain/leave"
)

type leaveRequestRepository struct {
	store *Store
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.EmployeeName = nil
	r.store.requests[req.ID] = req
	return r.withName(req), nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.withName(req), nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []leave.LeaveRequest
	for _, req := range r.store.requests {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.RequestType != nil && *filter.RequestType != "" && string(req.Type) != *filter.RequestType {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(req.Status) != *filter.Status {
			continue
		}
		matched = append(matched, r.withName(req))
	}

	// newest first
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.requests[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if !existing.IsPending() {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	existing.Type = req.Type
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.Description = req.Description
	existing.UpdatedAt = time.Now()
	r.store.requests[req.ID] = existing
	return nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, req leave.LeaveRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.requests[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if !existing.IsPending() {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	existing.Status = req.Status
	existing.ReviewedBy = req.ReviewedBy
	existing.ReviewedAt = req.ReviewedAt
	existing.RejectionReason = req.RejectionReason
	existing.UpdatedAt = time.Now()
	r.store.requests[req.ID] = existing
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.store.requests, id)
	return nil
}

// withName must be called with the store lock held.
func (r *leaveRequestRepository) withName(req leave.LeaveRequest) leave.LeaveRequest {
	if emp, ok := r.store.employees[req.EmployeeID]; ok {
		name := emp.Name
		req.EmployeeName = &name
	}
	return req
}
