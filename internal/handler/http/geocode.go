package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tempreco/ponto-backend-go/internal/handler/http/response"
	"github.com/tempreco/ponto-backend-go/internal/pkg/geocode"
	"github.com/tempreco/ponto-backend-go/internal/pkg/validator"
)

// ReverseGeocoder resolves coordinates to a simplified address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (geocode.Address, error)
}

type GeocodeHandler interface {
	Reverse(w http.ResponseWriter, r *http.Request)
}

type geocodeHandlerImpl struct {
	geocoder ReverseGeocoder
	logger   *slog.Logger
}

func NewGeocodeHandler(geocoder ReverseGeocoder, logger *slog.Logger) GeocodeHandler {
	return &geocodeHandlerImpl{geocoder: geocoder, logger: logger}
}

// Reverse handles GET /geocode/reverse?lat=&lng=
// Upstream failures still answer 200 with the "unavailable" texts.
func (h *geocodeHandlerImpl) Reverse(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "lat", Message: "lat must be a number"})
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "lng", Message: "lng must be a number"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}
	if err := geocode.ValidateCoordinates(lat, lng); err != nil {
		response.HandleError(w, err)
		return
	}

	address, err := h.geocoder.Reverse(r.Context(), lat, lng)
	if err != nil {
		h.logger.Warn("reverse geocoding failed", "lat", lat, "lng", lng, "error", err)
		response.Success(w, geocode.Unavailable(lat, lng))
		return
	}

	response.Success(w, address)
}
