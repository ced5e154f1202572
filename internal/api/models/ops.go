package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"time"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SystemStatus reports the external data providers and the local caches.
type SystemStatus struct {
	Status    HealthStatus     `json:"status"`
	Time      Timestamp        `json:"time"`
	Providers []ProviderStatus `json:"providers"`
	Caches    []CacheStatus    `json:"caches"`
	Sessions  int              `json:"activeSessions"`
}

// ProviderStatus is the circuit breaker view of one external provider.
type ProviderStatus struct {
	Provider            string       `json:"provider"`
	Status              HealthStatus `json:"status"`
	CircuitState        string       `json:"circuitState"`
	ConsecutiveFailures uint32       `json:"consecutiveFailures"`
	LastSuccessAt       *Timestamp   `json:"lastSuccessAt,omitempty"`
	LastFailureAt       *Timestamp   `json:"lastFailureAt,omitempty"`
	Message             *string      `json:"message,omitempty"`
}

// CacheStatus reports the fill of one provider cache.
type CacheStatus struct {
	Name         string `json:"name"`
	Provider     string `json:"provider"`
	Entries      int    `json:"entries"`
	FreshEntries *int   `json:"freshEntries,omitempty"`
}
