package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/api/response"
	"github.com/ventosol/ventosol/internal/scoring"
)

// SessionHandler handles dashboard sessions. A session keeps the newest
// analysis for one client; a request that is overtaken by a newer one for the
// same session is answered with 409 and its result is discarded.
type SessionHandler struct {
	advisor  *advisor.Advisor
	sessions *advisor.SessionStore
	logger   zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(a *advisor.Advisor, sessions *advisor.SessionStore, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{advisor: a, sessions: sessions, logger: logger}
}

// CreateSession handles POST /v1/sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	response.Created(w, r, "/v1/sessions/"+s.ID()+"/current", models.NewSession(s.State()))
}

// GetCurrent handles GET /v1/sessions/{sessionId}/current.
func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "sessionId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewSession(s.State()))
}

// Analyze handles POST /v1/sessions/{sessionId}/analyses. The session is
// created on first use.
func (h *SessionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.GetOrCreate(chi.URLParam(r, "sessionId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	req, ok := decodeAnalysisRequest(w, r)
	if !ok {
		return
	}

	_, err = s.Run(r.Context(), func(ctx context.Context) (scoring.Result, error) {
		return h.advisor.Analyze(ctx, req)
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewSession(s.State()))
}
