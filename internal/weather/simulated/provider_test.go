package simulated_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventosol/ventosol/internal/weather"
	"github.com/ventosol/ventosol/internal/weather/simulated"
)

func TestProvider_CurrentWeather(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := simulated.New(clock)

	snap, err := p.CurrentWeather(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)

	assert.Equal(t, 48.8566, snap.Lat)
	assert.Equal(t, 3.25, snap.WindSpeedMs)
	assert.Equal(t, 206.0, snap.WindDirectionDeg)
	require.NotNil(t, snap.WindGustMs)
	assert.Equal(t, 3.8, *snap.WindGustMs)
	assert.Equal(t, 52.0, snap.CloudCoverPct)
	assert.Equal(t, 1012.0, snap.PressureHpa)
	assert.InDelta(t, 7.55, snap.TemperatureC, 1e-9)
	assert.Equal(t, clock.Now(), snap.FetchedAt)
	assert.NoError(t, snap.Validate())
}

func TestProvider_SolarIrradiance(t *testing.T) {
	p := simulated.New(nil)
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	irr, err := p.SolarIrradiance(context.Background(), 48.8566, 2.3522, day)
	require.NoError(t, err)

	assert.Equal(t, day, irr.Date)
	assert.Equal(t, 3341.99, irr.ClearSkyGHI)
	assert.Equal(t, 1321.03, irr.CloudySkyGHI)
	assert.NoError(t, irr.Validate())
}

func TestProvider_CanceledContext(t *testing.T) {
	p := simulated.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.CurrentWeather(ctx, 0, 0)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = p.SolarIrradiance(ctx, 0, 0, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_ImplementsWeatherProvider(t *testing.T) {
	var _ weather.Provider = simulated.New(nil)
	assert.Equal(t, "simulated", simulated.New(nil).Name())
}
