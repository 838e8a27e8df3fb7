package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tempreco/ponto-backend-go/internal/domain/leave"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/middleware"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/response"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

func leaveFilterFromQuery(r *http.Request) leave.LeaveRequestFilter {
	return leave.LeaveRequestFilter{
		EmployeeID:  optionalQuery(r, "employee_id"),
		RequestType: optionalQuery(r, "request_type"),
		Status:      optionalQuery(r, "status"),
		Page:        getIntQueryParam(r, "page", 1),
		Limit:       getIntQueryParam(r, "limit", 20),
	}
}

// CreateRequest handles POST /leave-requests
func (h *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.CreateRequest(r.Context(), middleware.EmployeeID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", result)
}

// UpdateRequest handles PUT /leave-requests/{id}
func (h *leaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.leaveService.UpdateRequest(r.Context(), middleware.EmployeeID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", result)
}

// DeleteRequest handles DELETE /leave-requests/{id}
func (h *leaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.HandleError(w, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}})
		return
	}

	if err := h.leaveService.DeleteRequest(r.Context(), middleware.EmployeeID(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// MyRequests handles GET /leave-requests/my
func (h *leaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.MyRequests(r.Context(), middleware.EmployeeID(r.Context()), leaveFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRequests handles GET /leave-requests
func (h *leaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListRequests(r.Context(), leaveFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve handles PUT /leave-requests/{id}/approve
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.HandleError(w, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}})
		return
	}

	result, err := h.leaveService.Approve(r.Context(), middleware.EmployeeID(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject handles PUT /leave-requests/{id}/reject
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequestRequest
	// the reason is optional, so an empty body is accepted
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.leaveService.Reject(r.Context(), middleware.EmployeeID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}
