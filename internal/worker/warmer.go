package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/weather"
)

// ConditionsSource fetches and caches weather conditions.
type ConditionsSource interface {
	Conditions(ctx context.Context, lat, lng float64) (*weather.Conditions, error)
}

// SessionSweeper evicts idle sessions.
type SessionSweeper interface {
	Sweep() int
}

// WarmerConfig holds the dependencies of a Warmer.
type WarmerConfig struct {
	Config   Config
	Logger   zerolog.Logger
	Clock    clockwork.Clock
	Weather  ConditionsSource
	Sessions SessionSweeper // optional
}

// Warmer periodically prefetches conditions for a fixed set of points.
type Warmer struct {
	config   Config
	logger   zerolog.Logger
	clock    clockwork.Clock
	weather  ConditionsSource
	sessions SessionSweeper

	mu    sync.RWMutex
	stats Stats
}

// Stats tracks warm-up statistics across runs.
type Stats struct {
	Runs            int64
	Successful      int64
	Failed          int64
	SessionsEvicted int64
	LastRunAt       time.Time
	LastRunDuration time.Duration
}

// Result contains the outcome of one run.
type Result struct {
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	TotalPoints     int
	Successful      int
	Failed          int
	Errors          []PointError
	SessionsEvicted int
}

// PointError records a failed prefetch.
type PointError struct {
	Point Point
	Error string
}

// NewWarmer creates a warmer. Zero config values take their defaults.
func NewWarmer(cfg WarmerConfig) *Warmer {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Warmer{
		config:   cfg.Config.withDefaults(),
		logger:   cfg.Logger,
		clock:    clock,
		weather:  cfg.Weather,
		sessions: cfg.Sessions,
	}
}

// Start runs immediately and then every Interval until ctx is done.
func (w *Warmer) Start(ctx context.Context) {
	ticker := w.clock.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.Run(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("cache warmer stopped")
			return
		case <-ticker.Chan():
			w.Run(ctx)
		}
	}
}

// Run prefetches every point once and sweeps idle sessions.
func (w *Warmer) Run(ctx context.Context) *Result {
	start := w.clock.Now()
	result := &Result{
		StartTime:   start,
		TotalPoints: len(w.config.Points),
	}

	points := make(chan Point, len(w.config.Points))
	results := make(chan pointResult, len(w.config.Points))

	var wg sync.WaitGroup
	for i := 0; i < w.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.warmWorker(ctx, points, results)
		}()
	}

	for _, p := range w.config.Points {
		points <- p
	}
	close(points)

	go func() {
		wg.Wait()
		close(results)
	}()

	for pr := range results {
		if pr.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, PointError{Point: pr.point, Error: pr.err.Error()})
			continue
		}
		result.Successful++
	}

	if w.sessions != nil {
		result.SessionsEvicted = w.sessions.Sweep()
	}

	result.EndTime = w.clock.Now()
	result.Duration = result.EndTime.Sub(start)
	w.updateStats(result)

	w.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("sessions_evicted", result.SessionsEvicted).
		Msg("cache warm-up completed")

	return result
}

type pointResult struct {
	point Point
	err   error
}

func (w *Warmer) warmWorker(ctx context.Context, points <-chan Point, results chan<- pointResult) {
	for p := range points {
		if err := ctx.Err(); err != nil {
			results <- pointResult{point: p, err: err}
			continue
		}
		results <- pointResult{point: p, err: w.warmPoint(ctx, p)}
	}
}

func (w *Warmer) warmPoint(ctx context.Context, p Point) error {
	ctx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	if _, err := w.weather.Conditions(ctx, p.Lat, p.Lng); err != nil {
		w.logger.Warn().Err(err).
			Str("point", p.Name).
			Msg("cache warm-up failed")
		return err
	}
	return nil
}

func (w *Warmer) updateStats(r *Result) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stats.Runs++
	w.stats.Successful += int64(r.Successful)
	w.stats.Failed += int64(r.Failed)
	w.stats.SessionsEvicted += int64(r.SessionsEvicted)
	w.stats.LastRunAt = r.EndTime
	w.stats.LastRunDuration = r.Duration
}

// Stats returns a copy of the accumulated statistics.
func (w *Warmer) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}
