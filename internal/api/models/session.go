package models

import (
	"github.com/ventosol/ventosol/internal/advisor"
)

// Session is the body returned by the session endpoints. Current is the last
// completed analysis and stays set while a newer one is pending.
type Session struct {
	ID        string     `json:"id"`
	Current   *Analysis  `json:"current"`
	Pending   bool       `json:"pending"`
	LastError *string    `json:"lastError,omitempty"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// NewSession converts a session snapshot.
func NewSession(state advisor.SessionState) Session {
	s := Session{ID: state.ID, Pending: state.Pending}
	if state.Current != nil {
		a := NewAnalysis(*state.Current, state.UpdatedAt)
		s.Current = &a
	}
	if !state.UpdatedAt.IsZero() {
		ts := Timestamp(state.UpdatedAt)
		s.UpdatedAt = &ts
	}
	if state.LastError != nil {
		msg := state.LastError.Error()
		s.LastError = &msg
	}
	return s
}
