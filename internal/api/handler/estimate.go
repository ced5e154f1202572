package handler

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/api/response"
)

// EstimateHandler handles generation and payback estimates.
type EstimateHandler struct {
	advisor *advisor.Advisor
	clock   clockwork.Clock
	logger  zerolog.Logger
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(a *advisor.Advisor, clock clockwork.Clock, logger zerolog.Logger) *EstimateHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &EstimateHandler{advisor: a, clock: clock, logger: logger}
}

// Estimate handles POST /v1/estimates.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var body models.EstimateRequest
	if !response.DecodeJSON(w, r, &body) {
		return
	}
	if errs := body.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid estimate request", errs)
		return
	}

	est, err := h.advisor.Estimate(r.Context(), *body.Lat, *body.Lng, body.Inputs())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.Estimate{
		Lat:         *body.Lat,
		Lng:         *body.Lng,
		Estimate:    est,
		GeneratedAt: models.Timestamp(h.clock.Now()),
	})
}
