// Package main provides the entrypoint for the Ventosol API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api"
	"github.com/ventosol/ventosol/internal/api/middleware"
	"github.com/ventosol/ventosol/internal/config"
	"github.com/ventosol/ventosol/internal/geocoding"
	"github.com/ventosol/ventosol/internal/geocoding/nominatim"
	"github.com/ventosol/ventosol/internal/observability"
	"github.com/ventosol/ventosol/internal/provider/resilience"
	"github.com/ventosol/ventosol/internal/telemetry"
	"github.com/ventosol/ventosol/internal/weather"
	"github.com/ventosol/ventosol/internal/weather/openweathermap"
	"github.com/ventosol/ventosol/internal/weather/simulated"
	"github.com/ventosol/ventosol/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "ventosol-api"

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Env).
		Msg("starting Ventosol API")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
		Logger:         log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if tp.Enabled() {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(promRegistry)

	clock := clockwork.NewRealClock()
	registry := resilience.NewRegistryWithClock(clock)

	newClient := func(name string) *resilience.Client {
		c := resilience.DefaultClientConfig(name)
		c.Timeout = cfg.ProviderTimeout
		c.MaxRetries = uint64(cfg.ProviderMaxRetries)
		c.Registry = registry
		c.CircuitBreaker.OnStateChange = func(breaker string, from, to gobreaker.State) {
			log.Warn().
				Str("provider", breaker).
				Stringer("from", from).
				Stringer("to", to).
				Msg("provider circuit breaker state changed")
		}
		return resilience.NewClient(c)
	}

	// Weather provider: live data when an API key is configured
	var weatherProvider weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		weatherProvider = openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey:     cfg.OpenWeatherAPIKey,
			HTTPClient: newClient(openweathermap.ProviderName),
			Clock:      clock,
			Logger:     log,
		})
	} else {
		weatherProvider = simulated.New(clock)
		log.Warn().Msg("OPENWEATHER_API_KEY not set - using simulated weather")
	}

	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherProvider,
		Logger:   log,
		Clock:    clock,
		Metrics:  metrics,
		CacheTTL: cfg.WeatherCacheTTL,
	})
	log.Info().
		Str("provider", weatherService.ProviderName()).
		Dur("cache_ttl", cfg.WeatherCacheTTL).
		Msg("weather service initialized")

	geocodingService := geocoding.NewService(geocoding.ServiceConfig{
		Provider: nominatim.NewClient(nominatim.ClientConfig{
			BaseURL:    cfg.NominatimBaseURL,
			UserAgent:  cfg.NominatimUserAgent,
			HTTPClient: newClient(nominatim.ProviderName),
			Logger:     log,
		}),
		Logger:    log,
		Clock:     clock,
		Metrics:   metrics,
		CacheSize: cfg.GeocoderCacheSize,
	})
	log.Info().
		Int("cache_size", cfg.GeocoderCacheSize).
		Msg("geocoding service initialized")

	adv := advisor.New(advisor.Config{
		Geocoder: geocodingService,
		Weather:  weatherService,
		Metrics:  metrics,
		Logger:   log,
	})
	sessions := advisor.NewSessionStore(clock, metrics, cfg.SessionIdleTTL)

	// Background warm-up of the sample cities and idle session sweep
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if cfg.WarmerEnabled {
		warmerCfg := worker.DefaultConfig()
		warmerCfg.Interval = cfg.WarmerInterval
		warmer := worker.NewWarmer(worker.WarmerConfig{
			Config:   warmerCfg,
			Logger:   log,
			Clock:    clock,
			Weather:  weatherService,
			Sessions: sessions,
		})
		go warmer.Start(workerCtx)
		log.Info().
			Dur("interval", cfg.WarmerInterval).
			Msg("cache warmer started")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		Clock:              clock,
		Metrics:            httpMetrics,
		Gatherer:           promRegistry,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequireTLS:         cfg.RequireTLS,
		Advisor:            adv,
		Sessions:           sessions,
		Registry:           registry,
		Weather:            weatherService,
		Geocoder:           geocodingService,
	})

	// Create HTTP server. The write timeout leaves room for a retried provider call.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.ProviderTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopWorker()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
