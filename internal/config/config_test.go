package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Empty(t, cfg.NominatimBaseURL)
	assert.Equal(t, 8*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 1, cfg.ProviderMaxRetries)
	assert.Equal(t, 10*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, 512, cfg.GeocoderCacheSize)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RequireTLS)
	assert.True(t, cfg.WarmerEnabled)
	assert.Equal(t, 9*time.Minute, cfg.WarmerInterval)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPENWEATHER_API_KEY", "owm-test-key")
	t.Setenv("NOMINATIM_BASE_URL", "http://nominatim.local")
	t.Setenv("NOMINATIM_USER_AGENT", "ventosol-test/0.1")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("PROVIDER_MAX_RETRIES", "0")
	t.Setenv("WEATHER_CACHE_TTL", "1m")
	t.Setenv("GEOCODER_CACHE_SIZE", "64")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.ventosol.dev, http://localhost:5173,")
	t.Setenv("REQUIRE_TLS", "true")
	t.Setenv("WARMER_ENABLED", "false")
	t.Setenv("WARMER_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "owm-test-key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "http://nominatim.local", cfg.NominatimBaseURL)
	assert.Equal(t, "ventosol-test/0.1", cfg.NominatimUserAgent)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 0, cfg.ProviderMaxRetries)
	assert.Equal(t, time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, 64, cfg.GeocoderCacheSize)
	assert.Equal(t, []string{"https://app.ventosol.dev", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.RequireTLS)
	assert.False(t, cfg.WarmerEnabled)
	assert.Equal(t, 5*time.Minute, cfg.WarmerInterval)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nOPENWEATHER_API_KEY=from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "from-file", cfg.OpenWeatherAPIKey)

	t.Setenv("APP_PORT", "6060")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "6060", cfg.Port, "process environment wins")
}

func TestLoad_MissingDotEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PROVIDER_TIMEOUT", "soon"},
		{"PROVIDER_TIMEOUT", "-1s"},
		{"WEATHER_CACHE_TTL", "0s"},
		{"PROVIDER_MAX_RETRIES", "-1"},
		{"PROVIDER_MAX_RETRIES", "many"},
		{"GEOCODER_CACHE_SIZE", "0"},
		{"LOG_LEVEL", "loud"},
		{"WARMER_INTERVAL", "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
