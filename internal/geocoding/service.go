package geocoding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/observability"
	"github.com/ventosol/ventosol/internal/provider"
	"github.com/ventosol/ventosol/internal/scoring"
	"github.com/ventosol/ventosol/internal/terrain"
)

// DefaultCacheSize is the number of geocoding answers kept in memory.
const DefaultCacheSize = 512

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Clock times provider calls (default: real clock).
	Clock clockwork.Clock

	// Metrics records provider calls and cache lookups (optional).
	Metrics *observability.Metrics

	// CacheSize is the LRU capacity (default: DefaultCacheSize).
	CacheSize int
}

// Service geocodes through a provider with an LRU cache in front.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	clock    clockwork.Clock
	metrics  *observability.Metrics
	cache    *lruCache[scoring.Location]
}

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		clock:    clock,
		metrics:  cfg.Metrics,
		cache:    newLRUCache[scoring.Location](size),
	}
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// CacheLen returns the number of cached forward and reverse answers.
func (s *Service) CacheLen() int {
	return s.cache.len()
}

// Geocode resolves a free-text address to its best matching location.
// It returns ErrNotFound when nothing matches and ErrUnavailable when the
// provider fails.
func (s *Service) Geocode(ctx context.Context, query string) (scoring.Location, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return scoring.Location{}, ErrInvalidQuery
	}

	key := "fwd:" + strings.ToLower(query)
	if loc, ok := s.cache.get(key); ok {
		s.metrics.RecordCache("geocoder", "hit")
		return loc, nil
	}
	s.metrics.RecordCache("geocoder", "miss")

	start := s.clock.Now()
	places, err := s.provider.Search(ctx, query)
	if err == nil && len(places) == 0 {
		err = provider.ErrNoResults
	}
	s.metrics.RecordProviderCall(s.provider.Name(), "search", provider.Kind(err), s.clock.Since(start))

	if err != nil {
		if errors.Is(err, provider.ErrNoResults) {
			s.logger.Debug().Str("query", query).Msg("geocoding returned no results")
			return scoring.Location{}, ErrNotFound
		}
		s.logger.Error().Err(err).
			Str("query", query).
			Str("provider", s.provider.Name()).
			Msg("geocoding failed")
		return scoring.Location{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	loc := toLocation(places[0])
	s.cache.put(key, loc)
	return loc, nil
}

// ReverseGeocode names and classifies a coordinate. It never fails: on any
// provider error it returns a generic name with temperate terrain.
func (s *Service) ReverseGeocode(ctx context.Context, lat, lng float64) scoring.Location {
	fallback := FallbackLocation(lat, lng)
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fallback
	}

	key := fmt.Sprintf("rev:%.4f,%.4f", lat, lng)
	if loc, ok := s.cache.get(key); ok {
		s.metrics.RecordCache("geocoder", "hit")
		loc.Lat, loc.Lng = lat, lng
		return loc
	}
	s.metrics.RecordCache("geocoder", "miss")

	start := s.clock.Now()
	place, err := s.provider.Reverse(ctx, lat, lng)
	if err == nil && (place == nil || place.Name == "") {
		err = provider.ErrNoResults
	}
	s.metrics.RecordProviderCall(s.provider.Name(), "reverse", provider.Kind(err), s.clock.Since(start))

	if err != nil {
		s.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lng", lng).
			Msg("reverse geocoding failed, using fallback location")
		return fallback
	}

	loc := toLocation(*place)
	loc.Lat, loc.Lng = lat, lng
	s.cache.put(key, loc)
	return loc
}

// FallbackLocation is the location used when a coordinate cannot be named.
func FallbackLocation(lat, lng float64) scoring.Location {
	return scoring.Location{
		Lat:     lat,
		Lng:     lng,
		Name:    fmt.Sprintf("Location at %.4f, %.4f", lat, lng),
		Terrain: terrain.Default,
	}
}

func toLocation(p Place) scoring.Location {
	return scoring.Location{
		Lat:     p.Lat,
		Lng:     p.Lng,
		Name:    p.Name,
		Terrain: p.Terrain.OrDefault(),
	}
}
