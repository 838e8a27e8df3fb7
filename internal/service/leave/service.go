package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/auth"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/leave"
	"github.com/tempreco/ponto-backend-go/internal/pkg/clock"
)

type LeaveServiceImpl struct {
	requestRepo  leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	tx           attendance.TxManager
	clock        clock.Clock
	logger       *slog.Logger
}

func NewLeaveService(
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	tx attendance.TxManager,
	clk clock.Clock,
	logger *slog.Logger,
) leave.LeaveService {
	return &LeaveServiceImpl{
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		tx:           tx,
		clock:        clk,
		logger:       logger,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func mapRequestToResponse(req leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    req.EmployeeName,
		RequestType:     string(req.Type),
		StartDate:       formatDate(req.StartDate),
		EndDate:         formatDate(req.EndDate),
		Description:     req.Description,
		Status:          string(req.Status),
		CreatedBy:       req.CreatedBy,
		ReviewedBy:      req.ReviewedBy,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       req.UpdatedAt.Format(time.RFC3339),
	}
	if req.ReviewedAt != nil {
		reviewedAt := req.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}

// caller resolves the directory record behind a token.
func (s *LeaveServiceImpl) caller(ctx context.Context, callerID string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// CreateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, callerID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	owner := caller
	if req.EmployeeID != nil && *req.EmployeeID != caller.ID {
		if !caller.IsAdmin {
			return leave.LeaveRequestResponse{}, auth.ErrAdminPrivilegeRequired
		}
		if owner, err = s.caller(ctx, *req.EmployeeID); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	start, end := req.Period()
	created, err := s.requestRepo.Create(ctx, leave.LeaveRequest{
		ID:          id.String(),
		EmployeeID:  owner.ID,
		Type:        leave.RequestType(req.RequestType),
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(req.Description),
		Status:      leave.StatusPending,
		CreatedBy:   caller.ID,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	name := owner.Name
	created.EmployeeName = &name

	s.logger.Info("leave request created",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"type", created.Type,
		"created_by", created.CreatedBy,
	)
	return mapRequestToResponse(created), nil
}

// UpdateRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateRequest(ctx context.Context, callerID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var updated leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.requestRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if existing.EmployeeID != callerID {
			return leave.ErrNotRequestOwner
		}
		if !existing.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		req.Apply(&existing)
		if err := leave.ValidatePeriod(existing); err != nil {
			return err
		}
		if err := s.requestRepo.Update(ctx, existing); err != nil {
			return err
		}

		updated, err = s.requestRepo.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapRequestToResponse(updated), nil
}

// DeleteRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteRequest(ctx context.Context, callerID, id string) error {
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.requestRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// Admins may remove any request; owners only their pending ones.
		if !caller.IsAdmin {
			if existing.EmployeeID != caller.ID {
				return leave.ErrNotRequestOwner
			}
			if !existing.IsPending() {
				return leave.ErrLeaveRequestAlreadyProcessed
			}
		}

		return s.requestRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("leave request deleted", "request_id", id, "deleted_by", caller.ID)
	return nil
}

// MyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) MyRequests(ctx context.Context, callerID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.EmployeeID = &callerID
	return s.ListRequests(ctx, filter)
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapRequestToResponse(req))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Requests:   responses,
	}, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, reviewerID, id string) (leave.LeaveRequestResponse, error) {
	return s.review(ctx, reviewerID, id, leave.StatusApproved, nil)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, reviewerID string, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var reason *string
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		trimmed := strings.TrimSpace(*req.Reason)
		reason = &trimmed
	}
	return s.review(ctx, reviewerID, req.ID, leave.StatusRejected, reason)
}

func (s *LeaveServiceImpl) review(ctx context.Context, reviewerID, id string, status leave.RequestStatus, reason *string) (leave.LeaveRequestResponse, error) {
	reviewer, err := s.caller(ctx, reviewerID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !reviewer.IsAdmin {
		return leave.LeaveRequestResponse{}, auth.ErrAdminPrivilegeRequired
	}

	var reviewed leave.LeaveRequest
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := s.requestRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !req.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		now := s.clock.Now()
		req.Status = status
		req.ReviewedBy = &reviewer.ID
		req.ReviewedAt = &now
		req.RejectionReason = reason
		if err := s.requestRepo.UpdateStatus(ctx, req); err != nil {
			return err
		}

		reviewed, err = s.requestRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request reviewed",
		"request_id", id,
		"status", status,
		"reviewed_by", reviewer.ID,
	)
	return mapRequestToResponse(reviewed), nil
}
