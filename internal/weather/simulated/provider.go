// Package simulated provides a fixed weather.Provider used when no
// OpenWeatherMap API key is configured.
package simulated

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ventosol/ventosol/internal/weather"
)

// ProviderName identifies this weather provider.
const ProviderName = "simulated"

const kelvinOffset = 273.15

// Provider returns the same conditions for every location.
type Provider struct {
	clock clockwork.Clock
}

// New creates a simulated provider. A nil clock uses the real clock.
func New(clock clockwork.Clock) *Provider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Provider{clock: clock}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return ProviderName
}

// CurrentWeather returns a mild, partly cloudy day with a light south-westerly breeze.
func (p *Provider) CurrentWeather(ctx context.Context, lat, lng float64) (*weather.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := p.clock.Now()
	return &weather.Snapshot{
		Lat:              lat,
		Lng:              lng,
		WindSpeedMs:      3.25,
		WindDirectionDeg: 206,
		WindGustMs:       weather.Float64(3.8),
		CloudCoverPct:    52,
		PressureHpa:      1012,
		TemperatureC:     280.7 - kelvinOffset,
		HumidityPct:      75,
		Condition:        weather.ConditionClouds,
		Description:      "broken clouds",
		ObservedAt:       now,
		FetchedAt:        now,
	}, nil
}

// SolarIrradiance returns fixed daily clear and cloudy sky totals.
func (p *Provider) SolarIrradiance(ctx context.Context, lat, lng float64, date time.Time) (*weather.Irradiance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &weather.Irradiance{
		Lat:          lat,
		Lng:          lng,
		Date:         date,
		ClearSkyGHI:  3341.99,
		ClearSkyDNI:  6736.42,
		ClearSkyDHI:  796.63,
		CloudySkyGHI: 1321.03,
		CloudySkyDNI: 189.2,
		CloudySkyDHI: 1224.62,
		FetchedAt:    p.clock.Now(),
	}, nil
}
