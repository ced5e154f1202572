// Package handler provides HTTP handlers for the Ventosol API.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api/middleware"
	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/api/response"
	"github.com/ventosol/ventosol/internal/estimate"
	"github.com/ventosol/ventosol/internal/geocoding"
	"github.com/ventosol/ventosol/internal/weather"
)

// addressNotFoundDetail is shown to the user when a search matches nothing.
const addressNotFoundDetail = "address not found, try again"

// writeError maps domain errors onto problem responses. Unrecognised errors
// are logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	// The client went away; there is nobody to answer.
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request canceled")
		return
	}

	switch {
	case errors.Is(err, geocoding.ErrInvalidQuery):
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "q", Message: err.Error(), Code: "TOO_SHORT"},
		})
	case errors.Is(err, geocoding.ErrNotFound):
		response.AddressNotFound(w, r, addressNotFoundDetail)
	case errors.Is(err, advisor.ErrInvalidCoordinates),
		errors.Is(err, weather.ErrInvalidCoordinates),
		errors.Is(err, advisor.ErrUnknownStrategy),
		errors.Is(err, estimate.ErrNegativeInput),
		errors.Is(err, estimate.ErrInvalidConsumption):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, advisor.ErrSuperseded):
		response.Conflict(w, r, err.Error())
	case errors.Is(err, advisor.ErrSessionNotFound):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, weather.ErrDataUnavailable),
		errors.Is(err, geocoding.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msg("location data unavailable")
		response.ServiceUnavailable(w, r, "location data is unavailable right now, try again later")
	default:
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
