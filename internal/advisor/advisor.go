// Package advisor ties the geocoder, weather data and scoring engine together
// and serializes analyses per session.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ventosol/ventosol/internal/estimate"
	"github.com/ventosol/ventosol/internal/observability"
	"github.com/ventosol/ventosol/internal/scoring"
	"github.com/ventosol/ventosol/internal/terrain"
	"github.com/ventosol/ventosol/internal/weather"
)

const tracerName = "github.com/ventosol/ventosol/internal/advisor"

// Advisor errors.
var (
	ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrUnknownStrategy    = errors.New("strategy must be heuristic or weather")
)

// Geocoder resolves addresses and names coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (scoring.Location, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) scoring.Location
}

// WeatherSource supplies current conditions and irradiance.
type WeatherSource interface {
	CurrentWeather(ctx context.Context, lat, lng float64) (*weather.Snapshot, error)
	Conditions(ctx context.Context, lat, lng float64) (*weather.Conditions, error)
}

// Config holds the advisor dependencies.
type Config struct {
	Engine   *scoring.Engine
	Geocoder Geocoder
	Weather  WeatherSource
	Metrics  *observability.Metrics
	Logger   zerolog.Logger
}

// Advisor runs analyses.
type Advisor struct {
	engine   *scoring.Engine
	geocoder Geocoder
	weather  WeatherSource
	metrics  *observability.Metrics
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// New creates an advisor.
func New(cfg Config) *Advisor {
	engine := cfg.Engine
	if engine == nil {
		engine = scoring.NewEngine()
	}
	return &Advisor{
		engine:   engine,
		geocoder: cfg.Geocoder,
		weather:  cfg.Weather,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// Request describes one analysis. Name and Terrain are optional; when either
// is missing the coordinate is reverse geocoded to fill it in.
type Request struct {
	Lat      float64
	Lng      float64
	Name     string
	Terrain  terrain.Type
	Strategy scoring.Strategy
}

// Analyze scores the requested location with the requested strategy.
// The weather strategy fails with weather.ErrDataUnavailable when conditions
// cannot be fetched; the heuristic strategy never depends on a provider.
func (a *Advisor) Analyze(ctx context.Context, req Request) (scoring.Result, error) {
	strategy := req.Strategy
	if strategy == "" {
		strategy = scoring.StrategyHeuristic
	}
	if strategy != scoring.StrategyHeuristic && strategy != scoring.StrategyWeather {
		return scoring.Result{}, ErrUnknownStrategy
	}
	if !ValidCoordinates(req.Lat, req.Lng) {
		return scoring.Result{}, ErrInvalidCoordinates
	}

	ctx, span := a.tracer.Start(ctx, "advisor.Analyze", trace.WithAttributes(
		attribute.String("strategy", string(strategy)),
		attribute.Float64("lat", req.Lat),
		attribute.Float64("lng", req.Lng),
	))
	defer span.End()

	loc := a.resolve(ctx, req)

	var result scoring.Result
	switch strategy {
	case scoring.StrategyWeather:
		cond, err := a.weather.Conditions(ctx, loc.Lat, loc.Lng)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "weather data unavailable")
			return scoring.Result{}, err
		}
		result = a.engine.AnalyzeWeather(loc, cond.Snapshot, cond.Irradiance)
	default:
		result = a.engine.Analyze(loc)
	}

	span.SetAttributes(
		attribute.String("recommendation", string(result.Recommendation)),
		attribute.Float64("wind_score", result.WindScore),
		attribute.Float64("solar_score", result.SolarScore),
	)
	a.metrics.RecordAnalysis(string(result.Strategy), string(result.Recommendation))

	a.logger.Debug().
		Str("location", result.Location.Name).
		Str("terrain", string(result.Location.Terrain)).
		Str("strategy", string(result.Strategy)).
		Float64("wind_score", result.WindScore).
		Float64("solar_score", result.SolarScore).
		Str("recommendation", string(result.Recommendation)).
		Msg("analysis completed")

	return result, nil
}

// Search geocodes query and analyzes the best match. Geocoding failures are
// returned unchanged so callers can tell "not found" from "unavailable".
func (a *Advisor) Search(ctx context.Context, query string, strategy scoring.Strategy) (scoring.Result, error) {
	loc, err := a.geocoder.Geocode(ctx, query)
	if err != nil {
		return scoring.Result{}, err
	}
	return a.Analyze(ctx, Request{
		Lat:      loc.Lat,
		Lng:      loc.Lng,
		Name:     loc.Name,
		Terrain:  loc.Terrain,
		Strategy: strategy,
	})
}

// Estimate projects generation for a coordinate. Missing UV index or wind
// speed readings are taken from current weather; the daily mean wind speed is
// preferred over the instantaneous one.
func (a *Advisor) Estimate(ctx context.Context, lat, lng float64, in estimate.Inputs) (estimate.Estimate, error) {
	if !ValidCoordinates(lat, lng) {
		return estimate.Estimate{}, ErrInvalidCoordinates
	}

	if in.UVIndex == nil || in.WindSpeedMs == nil {
		snap, err := a.weather.CurrentWeather(ctx, lat, lng)
		if err != nil {
			return estimate.Estimate{}, fmt.Errorf("climate readings: %w", err)
		}
		if in.UVIndex == nil {
			in.UVIndex = snap.UVIndex
		}
		if in.WindSpeedMs == nil {
			in.WindSpeedMs = snap.DailyWindSpeedMs
			if in.WindSpeedMs == nil {
				in.WindSpeedMs = weather.Float64(snap.WindSpeedMs)
			}
		}
	}

	if err := in.Validate(); err != nil {
		return estimate.Estimate{}, err
	}
	return estimate.Calculate(in), nil
}

// resolve fills in a missing name or terrain from the reverse geocoder.
func (a *Advisor) resolve(ctx context.Context, req Request) scoring.Location {
	loc := scoring.Location{
		Lat:     req.Lat,
		Lng:     req.Lng,
		Name:    req.Name,
		Terrain: req.Terrain,
	}
	if loc.Name != "" && loc.Terrain != "" {
		return loc
	}

	named := a.geocoder.ReverseGeocode(ctx, req.Lat, req.Lng)
	if loc.Name == "" {
		loc.Name = named.Name
	}
	if loc.Terrain == "" {
		loc.Terrain = named.Terrain
	}
	return loc
}

// ValidCoordinates reports whether lat and lng are finite and in range.
func ValidCoordinates(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lng) &&
		lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
