package response

import (
	"errors"
	"net/http"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/auth"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/leave"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/pkg/geocode"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Refused clock transitions carry the operation and the current status
	var guard *attendance.GuardViolation
	if errors.As(err, &guard) {
		TransitionRefused(w, guard)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrEmployeeIdentityMissing):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEntryNotFound):
		NotFound(w, "Time entry not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request has already been processed")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Work hours settings not found")

	case errors.Is(err, geocode.ErrInvalidCoordinates):
		ValidationError(w, map[string]string{"coordinates": err.Error()})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
