package handler

import (
	"net/http"

	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/api/response"
	"github.com/ventosol/ventosol/internal/simulator"
)

// SimulationHandler serves the what-if simulator. It needs no providers.
type SimulationHandler struct{}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler() *SimulationHandler {
	return &SimulationHandler{}
}

// Defaults handles GET /v1/simulations/defaults.
func (h *SimulationHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.NewSimulationRanges())
}

// Simulate handles POST /v1/simulations.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var body models.SimulationRequest
	if !response.DecodeJSON(w, r, &body) {
		return
	}

	cond, errs := body.Conditions()
	if len(errs) > 0 {
		response.BadRequest(w, r, "simulation controls out of range", errs)
		return
	}
	response.JSON(w, r, http.StatusOK, simulator.Simulate(cond))
}
