package models

import (
	"math"
	"time"

	"github.com/ventosol/ventosol/internal/scoring"
	"github.com/ventosol/ventosol/internal/terrain"
)

// AnalysisRequest is the body of POST /v1/analyses, POST /v1/analyses/weather
// and POST /v1/sessions/{sessionId}/analyses. Name and terrain are optional.
type AnalysisRequest struct {
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Name     string   `json:"name,omitempty"`
	Terrain  string   `json:"terrain,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
}

// Validate returns one FieldError per invalid field.
func (r AnalysisRequest) Validate() []FieldError {
	errs := validateCoordinates(r.Lat, r.Lng)
	switch scoring.Strategy(r.Strategy) {
	case "", scoring.StrategyHeuristic, scoring.StrategyWeather:
	default:
		errs = append(errs, FieldError{Field: "strategy", Message: "must be heuristic or weather", Code: "INVALID_ENUM"})
	}
	return errs
}

// TerrainType returns the requested terrain, or "" when none was given so the
// advisor resolves it. Unrecognised names fall back to the default terrain.
func (r AnalysisRequest) TerrainType() terrain.Type {
	if r.Terrain == "" {
		return ""
	}
	return terrain.Parse(r.Terrain)
}

// Analysis is a scored location.
type Analysis struct {
	scoring.Result
	GeneratedAt Timestamp `json:"generatedAt"`
}

// NewAnalysis wraps a result for the response body.
func NewAnalysis(result scoring.Result, at time.Time) Analysis {
	return Analysis{Result: result, GeneratedAt: Timestamp(at)}
}

// TerrainInfo is one entry of the terrain catalog.
type TerrainInfo struct {
	Type          terrain.Type `json:"type"`
	Wind          Potential    `json:"wind"`
	Solar         Potential    `json:"solar"`
	BaseAltitudeM float64      `json:"baseAltitudeM"`
}

// Potential is a baseline score with its explanation.
type Potential struct {
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// TerrainList is the body of GET /v1/terrains.
type TerrainList struct {
	Items   []TerrainInfo `json:"items"`
	Default terrain.Type  `json:"default"`
}

// Suggestions is the body of GET /v1/locations/suggestions.
type Suggestions struct {
	Query string             `json:"query"`
	Items []scoring.Location `json:"items"`
}

func validateCoordinates(lat, lng *float64) []FieldError {
	var errs []FieldError
	switch {
	case lat == nil:
		errs = append(errs, FieldError{Field: "lat", Message: "required", Code: "REQUIRED"})
	case math.IsNaN(*lat) || *lat < -90 || *lat > 90:
		errs = append(errs, FieldError{Field: "lat", Message: "must be between -90 and 90", Code: "OUT_OF_RANGE"})
	}
	switch {
	case lng == nil:
		errs = append(errs, FieldError{Field: "lng", Message: "required", Code: "REQUIRED"})
	case math.IsNaN(*lng) || *lng < -180 || *lng > 180:
		errs = append(errs, FieldError{Field: "lng", Message: "must be between -180 and 180", Code: "OUT_OF_RANGE"})
	}
	return errs
}
