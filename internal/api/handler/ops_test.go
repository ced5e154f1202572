package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api/handler"
	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/geocoding"
	"github.com/ventosol/ventosol/internal/provider/resilience"
	"github.com/ventosol/ventosol/internal/weather"
	"github.com/ventosol/ventosol/internal/weather/simulated"
)

type stubGeoProvider struct{}

func (stubGeoProvider) Name() string { return "stub" }

func (stubGeoProvider) Search(context.Context, string) ([]geocoding.Place, error) {
	return nil, nil
}

func (stubGeoProvider) Reverse(context.Context, float64, float64) (*geocoding.Place, error) {
	return nil, errors.New("no reverse")
}

func TestOps_HealthAndReady(t *testing.T) {
	h := handler.NewOpsHandler(handler.OpsConfig{
		Version:   "1.2.3",
		BuildTime: "2026-01-01T00:00:00Z",
		Clock:     clockwork.NewFakeClockAt(testTime),
	})

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[models.Health](t, rec)
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "1.2.3", health.Details["version"])
	assert.Equal(t, testTime, health.Time.Time())

	rec = httptest.NewRecorder()
	h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOps_SystemStatus(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testTime)
	registry := resilience.NewRegistryWithClock(clock)
	cfg := resilience.DefaultClientConfig("nominatim")
	cfg.Registry = registry
	resilience.NewClient(cfg)
	registry.RecordFailure("nominatim", errors.New("connection refused"))

	wx := weather.NewService(weather.ServiceConfig{
		Provider: simulated.New(clock),
		Logger:   zerolog.Nop(),
		Clock:    clock,
	})
	_, err := wx.Conditions(context.Background(), 41.9, 12.5)
	require.NoError(t, err)

	geo := geocoding.NewService(geocoding.ServiceConfig{Provider: stubGeoProvider{}, Logger: zerolog.Nop()})
	geo.ReverseGeocode(context.Background(), 10, 20)

	sessions := advisor.NewSessionStore(clock, nil, 0)
	sessions.Create()

	h := handler.NewOpsHandler(handler.OpsConfig{
		Clock:    clock,
		Registry: registry,
		Weather:  wx,
		Geocoder: geo,
		Sessions: sessions,
	})

	rec := httptest.NewRecorder()
	h.SystemStatus(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[models.SystemStatus](t, rec)
	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.Equal(t, 1, status.Sessions)

	require.Len(t, status.Providers, 1)
	p := status.Providers[0]
	assert.Equal(t, "nominatim", p.Provider)
	assert.Equal(t, "closed", p.CircuitState)
	require.NotNil(t, p.Message)
	assert.Equal(t, "connection refused", *p.Message)
	require.NotNil(t, p.LastFailureAt)
	assert.Nil(t, p.LastSuccessAt)

	require.Len(t, status.Caches, 3)
	assert.Equal(t, "weather-snapshots", status.Caches[0].Name)
	assert.Equal(t, simulated.ProviderName, status.Caches[0].Provider)
	assert.Equal(t, 1, status.Caches[0].Entries)
	assert.Equal(t, "geocoder", status.Caches[2].Name)
	assert.Equal(t, "stub", status.Caches[2].Provider)
}

func TestOps_SystemStatus_Empty(t *testing.T) {
	h := handler.NewOpsHandler(handler.OpsConfig{})

	rec := httptest.NewRecorder()
	h.SystemStatus(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[models.SystemStatus](t, rec)
	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.Empty(t, status.Providers)
	assert.Empty(t, status.Caches)
}
