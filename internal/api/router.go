// Package api provides the HTTP API for Ventosol.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api/handler"
	"github.com/ventosol/ventosol/internal/api/middleware"
	"github.com/ventosol/ventosol/internal/api/response"
	"github.com/ventosol/ventosol/internal/geocoding"
	"github.com/ventosol/ventosol/internal/provider/resilience"
	"github.com/ventosol/ventosol/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger
	Clock     clockwork.Clock

	// Metrics records OpenTelemetry HTTP metrics (optional).
	Metrics *middleware.Metrics
	// Gatherer is exposed on /metrics when set.
	Gatherer prometheus.Gatherer

	CORSAllowedOrigins []string
	RequireTLS         bool

	Advisor  *advisor.Advisor
	Sessions *advisor.SessionStore
	Registry *resilience.Registry
	Weather  *weather.Service
	Geocoder *geocoding.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Sessions == nil {
		cfg.Sessions = advisor.NewSessionStore(cfg.Clock, nil, 0)
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID) // Generate/propagate request ID first
	r.Use(middleware.Tracing()) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))           // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))         // Panic recovery
	r.Use(chimiddleware.RealIP)                    // Real IP extraction
	r.Use(middleware.SecurityHeaders)              // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins)) // Dashboard origins
	r.Use(middleware.RequireTLS(cfg.RequireTLS))   // TLS enforcement behind a load balancer
	r.Use(middleware.ContentTypeJSON)              // JSON content type
	r.Use(middleware.RequireJSON)                  // JSON request bodies

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Clock:     cfg.Clock,
		Registry:  cfg.Registry,
		Weather:   cfg.Weather,
		Geocoder:  cfg.Geocoder,
		Sessions:  cfg.Sessions,
	})
	terrainHandler := handler.NewTerrainHandler()
	simulationHandler := handler.NewSimulationHandler()
	analysisHandler := handler.NewAnalysisHandler(cfg.Advisor, cfg.Clock, cfg.Logger)
	estimateHandler := handler.NewEstimateHandler(cfg.Advisor, cfg.Clock, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.Advisor, cfg.Sessions, cfg.Logger)

	// Create rate limit middleware for different endpoint categories
	providerRateLimit := middleware.RateLimitByIP(middleware.ProviderRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min
	sessionRateLimit := middleware.RateLimitBySession(middleware.ProviderRateLimit)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, req, "no such endpoint")
	})

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.With(standardRateLimit).Get("/status", opsHandler.SystemStatus)
		})

		// Local data - standard rate limiting
		r.With(standardRateLimit).Get("/terrains", terrainHandler.ListTerrains)
		r.With(standardRateLimit).Get("/locations/suggestions", terrainHandler.Suggestions)

		r.Route("/simulations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Post("/", simulationHandler.Simulate)
			r.Get("/defaults", simulationHandler.Defaults)
		})

		// Analyses - heuristic scoring may reverse geocode, the rest always
		// reach a provider
		r.Route("/analyses", func(r chi.Router) {
			r.With(standardRateLimit).Post("/", analysisHandler.Analyze)
			r.With(providerRateLimit).Post("/weather", analysisHandler.AnalyzeWeather)
			r.With(providerRateLimit).Get("/search", analysisHandler.Search)
		})

		r.With(providerRateLimit).Post("/estimates", estimateHandler.Estimate)

		// Sessions - per-session rate limiting on analyses
		r.Route("/sessions", func(r chi.Router) {
			r.With(standardRateLimit).Post("/", sessionHandler.CreateSession)
			r.Route("/{sessionId}", func(r chi.Router) {
				r.With(standardRateLimit).Get("/current", sessionHandler.GetCurrent)
				r.With(sessionRateLimit).Post("/analyses", sessionHandler.Analyze)
			})
		})
	})

	return r
}
