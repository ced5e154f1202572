package handler

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker/v2"

	"github.com/ventosol/ventosol/internal/advisor"
	"github.com/ventosol/ventosol/internal/api/models"
	"github.com/ventosol/ventosol/internal/api/response"
	"github.com/ventosol/ventosol/internal/geocoding"
	"github.com/ventosol/ventosol/internal/provider/resilience"
	"github.com/ventosol/ventosol/internal/weather"
)

// OpsConfig holds the dependencies reported by the ops endpoints. Any of the
// pointers may be nil; the corresponding section is then omitted.
type OpsConfig struct {
	Version   string
	BuildTime string
	Clock     clockwork.Clock
	Registry  *resilience.Registry
	Weather   *weather.Service
	Geocoder  *geocoding.Service
	Sessions  *advisor.SessionStore
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &OpsHandler{cfg: cfg}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.cfg.Clock.Now()),
		Details: map[string]interface{}{
			"version":   h.cfg.Version,
			"buildTime": h.cfg.BuildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Provider outages do not make the service unready: the heuristic strategy
// and the simulator keep working without them.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.cfg.Clock.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and cache status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(h.cfg.Clock.Now()),
		Providers: []models.ProviderStatus{},
		Caches:    []models.CacheStatus{},
	}

	if h.cfg.Registry != nil {
		status.Status = aggregateStatus(h.cfg.Registry.Status())
		for _, ph := range h.cfg.Registry.GetAllHealth() {
			status.Providers = append(status.Providers, providerStatus(ph))
		}
	}

	if h.cfg.Weather != nil {
		stats := h.cfg.Weather.CacheStats()
		status.Caches = append(status.Caches,
			models.CacheStatus{
				Name:         "weather-snapshots",
				Provider:     stats.Provider,
				Entries:      stats.SnapshotEntries,
				FreshEntries: intPtr(stats.SnapshotFreshEntries),
			},
			models.CacheStatus{
				Name:         "solar-irradiance",
				Provider:     stats.Provider,
				Entries:      stats.IrradianceEntries,
				FreshEntries: intPtr(stats.IrradianceFreshEntries),
			},
		)
	}

	if h.cfg.Geocoder != nil {
		status.Caches = append(status.Caches, models.CacheStatus{
			Name:     "geocoder",
			Provider: h.cfg.Geocoder.ProviderName(),
			Entries:  h.cfg.Geocoder.CacheLen(),
		})
	}

	if h.cfg.Sessions != nil {
		status.Sessions = h.cfg.Sessions.Len()
	}

	response.JSON(w, r, http.StatusOK, status)
}

func aggregateStatus(s resilience.Status) models.HealthStatus {
	switch s {
	case resilience.StatusDown:
		return models.HealthStatusFail
	case resilience.StatusDegraded:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}

func providerStatus(ph *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider:            ph.Name,
		Status:              models.HealthStatusOK,
		CircuitState:        ph.CircuitState.String(),
		ConsecutiveFailures: ph.Counts.ConsecutiveFailures,
		LastSuccessAt:       models.TimestampPtr(ph.LastSuccessAt),
		LastFailureAt:       models.TimestampPtr(ph.LastFailureAt),
	}
	switch ph.CircuitState {
	case gobreaker.StateOpen:
		ps.Status = models.HealthStatusFail
	case gobreaker.StateHalfOpen:
		ps.Status = models.HealthStatusDegraded
	}
	if ph.LastError != "" {
		msg := ph.LastError
		ps.Message = &msg
	}
	return ps
}

func intPtr(i int) *int {
	return &i
}
