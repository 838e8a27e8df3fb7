package http

import (
	"encoding/json"
	"net/http"

	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	GetWorkHours(w http.ResponseWriter, r *http.Request)
	UpdateWorkHours(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

// GetWorkHours handles GET /settings/work-hours
func (h *settingsHandlerImpl) GetWorkHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetWorkHours(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateWorkHours handles PUT /settings/work-hours
func (h *settingsHandlerImpl) UpdateWorkHours(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateWorkHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.UpdateWorkHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work hours updated successfully", result)
}
