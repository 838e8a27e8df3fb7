package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/middleware"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/response"
	"github.com/tempreco/ponto-backend-go/internal/pkg/jwt"
	"github.com/tempreco/ponto-backend-go/internal/pkg/sse"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

const keepaliveInterval = 30 * time.Second

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	LunchOut(w http.ResponseWriter, r *http.Request)
	LunchIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
	hub               *sse.Hub
	logger            *slog.Logger
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service, hub *sse.Hub, logger *slog.Logger) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
		logger:            logger,
	}
}

// Today handles GET /attendance/today
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Today(r.Context(), middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn handles POST /attendance/clock-in
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.ClockIn, "Clock in successful")
}

// LunchOut handles POST /attendance/lunch-out
func (h *attendanceHandlerImpl) LunchOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.LunchOut, "Lunch break started")
}

// LunchIn handles POST /attendance/lunch-in
func (h *attendanceHandlerImpl) LunchIn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.LunchIn, "Back from lunch")
}

// ClockOut handles POST /attendance/clock-out
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.ClockOut, "Clock out successful")
}

type transitionFunc func(ctx context.Context, employeeID string) (attendance.TimeEntryResponse, error)

func (h *attendanceHandlerImpl) transition(w http.ResponseWriter, r *http.Request, op transitionFunc, message string) {
	employeeID := middleware.EmployeeID(r.Context())

	result, err := op(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Push the new state right away instead of waiting for the next tick
	if h.hub.SubscriberCount(employeeID) > 0 {
		if live, err := h.attendanceService.Live(r.Context(), employeeID); err == nil {
			h.hub.Publish(employeeID, sse.Event{EmployeeID: employeeID, Event: sse.EventLiveHours, Data: live})
		}
	}

	response.SuccessWithMessage(w, message, result)
}

// GetMyAttendance handles GET /attendance/my
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.HistoryFilter{
		Date:      optionalQuery(r, "date"),
		StartDate: optionalQuery(r, "start_date"),
		EndDate:   optionalQuery(r, "end_date"),
		Status:    optionalQuery(r, "status"),
		Page:      getIntQueryParam(r, "page", 1),
		Limit:     getIntQueryParam(r, "limit", 20),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	result, err := h.attendanceService.History(r.Context(), middleware.EmployeeID(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyBalance handles GET /attendance/balance
func (h *attendanceHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Balance(r.Context(), middleware.EmployeeID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeBalance handles GET /employees/{id}/balance
func (h *attendanceHandlerImpl) GetEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.HandleError(w, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}})
		return
	}

	result, err := h.attendanceService.Balance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.EntryFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Date:       optionalQuery(r, "date"),
		StartDate:  optionalQuery(r, "start_date"),
		EndDate:    optionalQuery(r, "end_date"),
		Status:     optionalQuery(r, "status"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
		SortBy:     r.URL.Query().Get("sort_by"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetStreamToken handles GET /attendance/live/token
func (h *attendanceHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	token, expiresIn, err := h.jwtService.GenerateStreamToken(middleware.EmployeeID(r.Context()))
	if err != nil {
		h.logger.Error("failed to generate stream token", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, attendance.StreamTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles the live hours SSE connection, GET /attendance/live?token=
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	employeeID, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// Unknown employees get a regular error response, not an empty stream
	live, err := h.attendanceService.Live(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":%q}\n\n", employeeID)
	writeEvent(w, sse.EventLiveHours, live)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, event.Event, event.Data); err != nil {
				h.logger.Warn("failed to encode stream event", "employee_id", employeeID, "error", err)
				continue
			}
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
