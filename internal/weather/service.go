package weather

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ventosol/ventosol/internal/observability"
	"github.com/ventosol/ventosol/internal/provider"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// CurrentWeather fetches current conditions for a location.
	CurrentWeather(ctx context.Context, lat, lng float64) (*Snapshot, error)

	// SolarIrradiance fetches the daily irradiance for a location and date.
	SolarIrradiance(ctx context.Context, lat, lng float64, date time.Time) (*Irradiance, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// Clock is the time source (default: real clock).
	Clock clockwork.Clock

	// Metrics records provider calls and cache lookups (optional).
	Metrics *observability.Metrics

	// CacheTTL is how long to cache weather data (default: 10 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default: 0.1).
	// Points within the same grid cell share cached data.
	CacheGridSize float64

	// StaleIfErrorTTL allows serving stale data on provider errors (default: 1 hour).
	StaleIfErrorTTL time.Duration

	// FetchTimeout bounds a shared provider fetch (default: 30 seconds).
	// Callers stop waiting when their own context ends; the fetch itself
	// continues so its result still lands in the cache.
	FetchTimeout time.Duration
}

// Conditions bundles everything the weather scoring strategy needs.
type Conditions struct {
	Snapshot   Snapshot
	Irradiance Irradiance
}

// Service provides weather data with caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	clock           clockwork.Clock
	metrics         *observability.Metrics
	cacheTTL        time.Duration
	cacheGridSize   float64
	staleIfErrorTTL time.Duration
	fetchTimeout    time.Duration

	flights         singleflight.Group
	mu              sync.RWMutex
	snapshots       map[string]*cached[Snapshot]
	irradiance      map[string]*cached[Irradiance]
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

type cached[T any] struct {
	value     *T
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.1 // ~11km at equator
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 1 * time.Hour
	}

	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = 30 * time.Second
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		clock:           clock,
		metrics:         cfg.Metrics,
		cacheTTL:        cacheTTL,
		cacheGridSize:   cacheGridSize,
		staleIfErrorTTL: staleIfErrorTTL,
		fetchTimeout:    fetchTimeout,
		snapshots:       make(map[string]*cached[Snapshot]),
		irradiance:      make(map[string]*cached[Irradiance]),
		lastCleanup:     clock.Now(),
		cleanupInterval: 5 * time.Minute,
	}
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// CurrentWeather returns current weather for a location.
// Uses cached data if available and not expired.
func (s *Service) CurrentWeather(ctx context.Context, lat, lng float64) (*Snapshot, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	key := s.cacheKey(lat, lng)
	return fetchCached(ctx, s, s.snapshots, key, "current", func(ctx context.Context) (*Snapshot, error) {
		snap, err := s.provider.CurrentWeather(ctx, lat, lng)
		if err != nil {
			return nil, err
		}
		if err := snap.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", provider.ErrMalformedResponse, err)
		}
		return snap, nil
	})
}

// SolarIrradiance returns the daily irradiance for a location and date.
func (s *Service) SolarIrradiance(ctx context.Context, lat, lng float64, date time.Time) (*Irradiance, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	key := s.cacheKey(lat, lng) + "@" + date.Format(time.DateOnly)
	return fetchCached(ctx, s, s.irradiance, key, "irradiance", func(ctx context.Context) (*Irradiance, error) {
		irr, err := s.provider.SolarIrradiance(ctx, lat, lng, date)
		if err != nil {
			return nil, err
		}
		if err := irr.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", provider.ErrMalformedResponse, err)
		}
		return irr, nil
	})
}

// Conditions fetches the current weather and today's irradiance. It returns
// either both complete structures or ErrDataUnavailable, never a partial result.
func (s *Service) Conditions(ctx context.Context, lat, lng float64) (*Conditions, error) {
	snap, err := s.CurrentWeather(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	irr, err := s.SolarIrradiance(ctx, lat, lng, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}

	return &Conditions{Snapshot: *snap, Irradiance: *irr}, nil
}

// fetchCached serves from cache or calls fetch, falling back to stale data on
// error. The lock is never held across fetch, and concurrent misses for the
// same key share one provider call.
func fetchCached[T any](
	ctx context.Context,
	s *Service,
	entries map[string]*cached[T],
	key, operation string,
	fetch func(context.Context) (*T, error),
) (*T, error) {
	cacheName := "weather_" + operation

	s.mu.RLock()
	c, ok := entries[key]
	s.mu.RUnlock()
	if ok && s.clock.Now().Before(c.expiresAt) {
		s.metrics.RecordCache(cacheName, "hit")
		return c.value, nil
	}
	s.metrics.RecordCache(cacheName, "miss")

	flight := s.flights.DoChan(operation+"|"+key, func() (any, error) {
		// A flight that finished after our lookup may already have stored the entry.
		s.mu.RLock()
		c, ok := entries[key]
		s.mu.RUnlock()
		if ok && s.clock.Now().Before(c.expiresAt) {
			return c.value, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return fetchAndStore(fetchCtx, s, entries, key, operation, fetch)
	})

	select {
	case <-ctx.Done():
		s.logger.Debug().Err(ctx.Err()).
			Str("key", key).
			Str("operation", operation).
			Msg("weather request canceled while waiting for provider")
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, ctx.Err())
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}

func fetchAndStore[T any](
	ctx context.Context,
	s *Service,
	entries map[string]*cached[T],
	key, operation string,
	fetch func(context.Context) (*T, error),
) (*T, error) {
	s.logger.Debug().
		Str("key", key).
		Str("operation", operation).
		Str("provider", s.provider.Name()).
		Msg("fetching weather from provider")

	start := s.clock.Now()
	value, err := fetch(ctx)
	s.metrics.RecordProviderCall(s.provider.Name(), operation, provider.Kind(err), s.clock.Since(start))

	now := s.clock.Now()
	if err != nil {
		s.logger.Error().Err(err).
			Str("key", key).
			Str("operation", operation).
			Msg("failed to fetch weather")

		s.mu.RLock()
		c, ok := entries[key]
		s.mu.RUnlock()
		if ok && now.Before(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Time("fetched_at", c.fetchedAt).
				Msg("serving stale weather data due to provider error")
			s.metrics.RecordCache("weather_"+operation, "stale")
			return c.value, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entries[key] = &cached[T]{
		value:     value,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}
	s.cleanupIfNeeded(now)

	return value, nil
}

// cacheKey groups nearby points into grid cells to reduce API calls.
func (s *Service) cacheKey(lat, lng float64) string {
	gridLat := math.Floor(lat/s.cacheGridSize) * s.cacheGridSize
	gridLng := math.Floor(lng/s.cacheGridSize) * s.cacheGridSize
	return fmt.Sprintf("%.2f:%.2f", gridLat, gridLng)
}

// cleanupIfNeeded removes entries too old to serve even as stale data.
// Callers must hold s.mu.
func (s *Service) cleanupIfNeeded(now time.Time) {
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}
	s.lastCleanup = now

	expired := 0
	for key, c := range s.snapshots {
		if now.After(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.snapshots, key)
			expired++
		}
	}
	for key, c := range s.irradiance {
		if now.After(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.irradiance, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().
			Int("expired_entries", expired).
			Msg("cleaned up expired weather cache entries")
	}
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.snapshots)
	clear(s.irradiance)
}

// CacheStats contains cache statistics.
type CacheStats struct {
	SnapshotEntries        int
	SnapshotFreshEntries   int
	IrradianceEntries      int
	IrradianceFreshEntries int
	Provider               string
}

// CacheStats returns cache statistics.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()
	stats := CacheStats{
		SnapshotEntries:   len(s.snapshots),
		IrradianceEntries: len(s.irradiance),
		Provider:          s.provider.Name(),
	}
	for _, c := range s.snapshots {
		if now.Before(c.expiresAt) {
			stats.SnapshotFreshEntries++
		}
	}
	for _, c := range s.irradiance {
		if now.Before(c.expiresAt) {
			stats.IrradianceFreshEntries++
		}
	}
	return stats
}

func validateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
