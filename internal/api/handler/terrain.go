package handler

import (
	"net/http"
	"strings"

	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/api/response"
	"github.com/ventosol/ventosol/internal/geocoding"
	"github.com/ventosol/ventosol/internal/terrain"
)

// TerrainHandler serves the terrain catalog and the sample location suggestions.
type TerrainHandler struct{}

// NewTerrainHandler creates a new TerrainHandler.
func NewTerrainHandler() *TerrainHandler {
	return &TerrainHandler{}
}

// ListTerrains handles GET /v1/terrains.
func (h *TerrainHandler) ListTerrains(w http.ResponseWriter, r *http.Request) {
	types := terrain.All()
	list := models.TerrainList{
		Items:   make([]models.TerrainInfo, 0, len(types)),
		Default: terrain.Default,
	}
	for _, t := range types {
		wind, solar := terrain.LookupWind(t), terrain.LookupSolar(t)
		list.Items = append(list.Items, models.TerrainInfo{
			Type:          t,
			Wind:          models.Potential{Score: wind.Base, Description: wind.Description},
			Solar:         models.Potential{Score: solar.Base, Description: solar.Description},
			BaseAltitudeM: terrain.BaseAltitude(t),
		})
	}
	response.JSON(w, r, http.StatusOK, list)
}

// Suggestions handles GET /v1/locations/suggestions?q=...&set=terrain|cities.
// Queries shorter than three characters return an empty list.
func (h *TerrainHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	samples := geocoding.TerrainSamples()
	switch strings.ToLower(r.URL.Query().Get("set")) {
	case "", "terrain":
	case "cities":
		samples = geocoding.CitySamples()
	default:
		response.BadRequest(w, r, "set must be terrain or cities", []models.FieldError{
			{Field: "set", Message: "must be terrain or cities", Code: "INVALID_ENUM"},
		})
		return
	}

	response.JSON(w, r, http.StatusOK, models.Suggestions{
		Query: query,
		Items: geocoding.Suggest(query, samples),
	})
}
