package geocoding

import (
	"strings"

	"github.com/ventosol/ventosol/internal/scoring"
	"github.com/ventosol/ventosol/internal/terrain"
)

// Sample locations offered as search suggestions. The terrain samples cover
// every terrain type; the city samples are used with live weather.
var (
	terrainSamples = []scoring.Location{
		{Name: "Sahara Desert, Algeria", Lat: 27.1258, Lng: 2.4519, Terrain: terrain.Desert},
		{Name: "San Francisco Bay, USA", Lat: 37.8199, Lng: -122.4783, Terrain: terrain.Coastal},
		{Name: "Swiss Alps, Switzerland", Lat: 46.8182, Lng: 8.2275, Terrain: terrain.Mountains},
		{Name: "Great Plains, USA", Lat: 41.5, Lng: -99.8, Terrain: terrain.Plains},
		{Name: "Amazon Rainforest, Brazil", Lat: -3.4653, Lng: -62.2159, Terrain: terrain.Forest},
		{Name: "Manhattan, New York, USA", Lat: 40.7831, Lng: -73.9712, Terrain: terrain.Urban},
		{Name: "Palo Alto, California, USA", Lat: 37.4419, Lng: -122.143, Terrain: terrain.Suburban},
		{Name: "Bali, Indonesia", Lat: -8.3405, Lng: 115.092, Terrain: terrain.Tropical},
		{Name: "Svalbard, Norway", Lat: 78.6569, Lng: 16.35, Terrain: terrain.Arctic},
		{Name: "Tuscany, Italy", Lat: 43.7711, Lng: 11.2486, Terrain: terrain.Temperate},
	}

	citySamples = []scoring.Location{
		{Name: "Rome, Italy", Lat: 41.9028, Lng: 12.4964, Terrain: terrain.Default},
		{Name: "Paris, France", Lat: 48.8566, Lng: 2.3522, Terrain: terrain.Default},
		{Name: "London, UK", Lat: 51.5074, Lng: -0.1278, Terrain: terrain.Default},
		{Name: "New York, USA", Lat: 40.7128, Lng: -74.006, Terrain: terrain.Default},
		{Name: "Tokyo, Japan", Lat: 35.6762, Lng: 139.6503, Terrain: terrain.Default},
		{Name: "Sydney, Australia", Lat: -33.8688, Lng: 151.2093, Terrain: terrain.Default},
		{Name: "Rio de Janeiro, Brazil", Lat: -22.9068, Lng: -43.1729, Terrain: terrain.Default},
		{Name: "Cape Town, South Africa", Lat: -33.9249, Lng: 18.4241, Terrain: terrain.Default},
		{Name: "Moscow, Russia", Lat: 55.7558, Lng: 37.6173, Terrain: terrain.Default},
		{Name: "Dubai, UAE", Lat: 25.2048, Lng: 55.2708, Terrain: terrain.Default},
	}
)

// TerrainSamples returns the terrain sample locations.
func TerrainSamples() []scoring.Location {
	return append([]scoring.Location(nil), terrainSamples...)
}

// CitySamples returns the city sample locations.
func CitySamples() []scoring.Location {
	return append([]scoring.Location(nil), citySamples...)
}

// Suggest returns the samples whose name contains query, ignoring case.
// Queries shorter than MinQueryLength return nothing.
func Suggest(query string, samples []scoring.Location) []scoring.Location {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < MinQueryLength {
		return []scoring.Location{}
	}

	out := make([]scoring.Location, 0, len(samples))
	for _, s := range samples {
		if strings.Contains(strings.ToLower(s.Name), query) {
			out = append(out, s)
		}
	}
	return out
}
