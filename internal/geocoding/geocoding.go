// Package geocoding resolves addresses to coordinates and coordinates to
// named, terrain-classified locations.
package geocoding

import (
	"context"
	"errors"

	"github.com/ventosol/ventosol/internal/terrain"
)

// Geocoding errors.
var (
	// ErrNotFound means the query matched no place.
	ErrNotFound = errors.New("address not found")

	// ErrInvalidQuery means the query is too short to search for.
	ErrInvalidQuery = errors.New("search query must be at least 3 characters")

	// ErrUnavailable means the provider could not be reached or answered badly.
	ErrUnavailable = errors.New("location data unavailable")
)

// MinQueryLength is the shortest query sent to a provider.
const MinQueryLength = 3

// Place is a geocoding match.
type Place struct {
	Lat     float64
	Lng     float64
	Name    string
	Terrain terrain.Type
}

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Search returns places matching a free-text query, best match first.
	// An empty slice means nothing matched.
	Search(ctx context.Context, query string) ([]Place, error)

	// Reverse returns the place at a coordinate.
	Reverse(ctx context.Context, lat, lng float64) (*Place, error)

	// Name returns the provider name for logging.
	Name() string
}
