package handler

import (
	"net/http"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/api/response"
	"github.com/ventosol/ventosol/internal/scoring"
)

// AnalysisHandler handles the stateless analysis endpoints.
type AnalysisHandler struct {
	advisor *advisor.Advisor
	clock   clockwork.Clock
	logger  zerolog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(a *advisor.Advisor, clock clockwork.Clock, logger zerolog.Logger) *AnalysisHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AnalysisHandler{advisor: a, clock: clock, logger: logger}
}

// Analyze handles POST /v1/analyses, which only scores heuristically. Live
// weather scoring goes through POST /v1/analyses/weather and its tighter
// rate limit.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, scoring.StrategyHeuristic)
}

// AnalyzeWeather handles POST /v1/analyses/weather, which always scores from
// live conditions and answers 503 when they cannot be fetched.
func (h *AnalysisHandler) AnalyzeWeather(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, scoring.StrategyWeather)
}

func (h *AnalysisHandler) analyze(w http.ResponseWriter, r *http.Request, force scoring.Strategy) {
	req, ok := decodeAnalysisRequest(w, r)
	if !ok {
		return
	}
	if req.Strategy != "" && req.Strategy != force {
		response.BadRequest(w, r, "strategy not supported on this endpoint", []models.FieldError{
			{Field: "strategy", Message: "must be omitted or " + string(force), Code: "UNSUPPORTED"},
		})
		return
	}
	req.Strategy = force

	result, err := h.advisor.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewAnalysis(result, h.clock.Now()))
}

// Search handles GET /v1/analyses/search?q=...&strategy=...
func (h *AnalysisHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		response.BadRequest(w, r, "query parameter q is required", []models.FieldError{
			{Field: "q", Message: "required", Code: "REQUIRED"},
		})
		return
	}

	strategy := scoring.Strategy(r.URL.Query().Get("strategy"))
	switch strategy {
	case "", scoring.StrategyHeuristic, scoring.StrategyWeather:
	default:
		response.BadRequest(w, r, "invalid strategy", []models.FieldError{
			{Field: "strategy", Message: "must be heuristic or weather", Code: "INVALID_ENUM"},
		})
		return
	}

	result, err := h.advisor.Search(r.Context(), query, strategy)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewAnalysis(result, h.clock.Now()))
}

// decodeAnalysisRequest reads and validates an analysis body, writing a 400
// problem on failure.
func decodeAnalysisRequest(w http.ResponseWriter, r *http.Request) (advisor.Request, bool) {
	var body models.AnalysisRequest
	if !response.DecodeJSON(w, r, &body) {
		return advisor.Request{}, false
	}
	if errs := body.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "invalid analysis request", errs)
		return advisor.Request{}, false
	}
	return advisor.Request{
		Lat:      *body.Lat,
		Lng:      *body.Lng,
		Name:     strings.TrimSpace(body.Name),
		Terrain:  body.TerrainType(),
		Strategy: scoring.Strategy(body.Strategy),
	}, true
}
