// Package config loads service settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all service settings.
type Config struct {
	Port     string
	Env      string
	LogLevel zerolog.Level

	// OpenWeatherAPIKey enables the live weather provider. When empty the
	// simulated provider is used.
	OpenWeatherAPIKey string

	NominatimBaseURL   string
	NominatimUserAgent string

	ProviderTimeout    time.Duration
	ProviderMaxRetries int

	WeatherCacheTTL   time.Duration
	GeocoderCacheSize int
	SessionIdleTTL    time.Duration

	// WarmerEnabled runs the background weather warm-up and session sweep.
	WarmerEnabled  bool
	WarmerInterval time.Duration

	OTelEnabled  bool
	OTLPEndpoint string

	// CORSAllowedOrigins lists the dashboard origins; "*" allows any.
	CORSAllowedOrigins []string
	RequireTLS         bool

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, falling back to values in the
// given .env files and then to defaults. With no files, ./.env is read when it
// exists. Process environment always wins over file values.
func Load(files ...string) (*Config, error) {
	env, err := readDotEnv(files)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               env.get("APP_PORT", "8080"),
		Env:                env.get("APP_ENV", "development"),
		OpenWeatherAPIKey:  env.get("OPENWEATHER_API_KEY", ""),
		NominatimBaseURL:   env.get("NOMINATIM_BASE_URL", ""),
		NominatimUserAgent: env.get("NOMINATIM_USER_AGENT", ""),
		OTelEnabled:        env.get("OTEL_ENABLED", "false") == "true",
		OTLPEndpoint:       env.get("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		CORSAllowedOrigins: env.list("CORS_ALLOWED_ORIGINS", "*"),
		RequireTLS:         env.get("REQUIRE_TLS", "false") == "true",
		WarmerEnabled:      env.get("WARMER_ENABLED", "true") == "true",
	}

	if cfg.LogLevel, err = zerolog.ParseLevel(env.get("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.ProviderTimeout, err = env.duration("PROVIDER_TIMEOUT", 8*time.Second); err != nil {
		return nil, err
	}
	if cfg.WeatherCacheTTL, err = env.duration("WEATHER_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = env.duration("SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.WarmerInterval, err = env.duration("WARMER_INTERVAL", 9*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = env.duration("SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ProviderMaxRetries, err = env.integer("PROVIDER_MAX_RETRIES", 1, 0); err != nil {
		return nil, err
	}
	if cfg.GeocoderCacheSize, err = env.integer("GEOCODER_CACHE_SIZE", 512, 1); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

type source map[string]string

func readDotEnv(files []string) (source, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return source{}, nil
		}
		files = []string{".env"}
	}
	values, err := godotenv.Read(files...)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return values, nil
}

func (s source) get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := s[key]; v != "" {
		return v
	}
	return fallback
}

func (s source) list(key, fallback string) []string {
	var out []string
	for _, v := range strings.Split(s.get(key, fallback), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s source) duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := s.get(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func (s source) integer(key string, fallback, minimum int) (int, error) {
	raw := s.get(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < minimum {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}
