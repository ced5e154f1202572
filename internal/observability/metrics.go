// Package observability holds the Prometheus metrics for scoring and
// external data providers.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ventosol"

// Metrics holds the Prometheus counters and histograms for the advisor.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Analyses        *prometheus.CounterVec   // labels: strategy, recommendation
	ProviderCalls   *prometheus.CounterVec   // labels: provider, operation, outcome
	ProviderLatency *prometheus.HistogramVec // labels: provider, operation
	CacheLookups    *prometheus.CounterVec   // labels: cache, result={hit,miss,stale}
	StaleDiscarded  prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed location analyses by strategy and recommendation.",
		}, []string{"strategy", "recommendation"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "External provider requests by outcome.",
		}, []string{"provider", "operation", "outcome"}),
		ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of external provider requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "operation"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Provider cache lookups by result.",
		}, []string{"cache", "result"}),
		StaleDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_discarded_total",
			Help:      "Analyses completed after being superseded by a newer request.",
		}),
	}

	reg.MustRegister(
		m.Analyses,
		m.ProviderCalls,
		m.ProviderLatency,
		m.CacheLookups,
		m.StaleDiscarded,
	)

	return m
}

// RecordAnalysis counts a completed analysis.
func (m *Metrics) RecordAnalysis(strategy, recommendation string) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(strategy, recommendation).Inc()
}

// RecordProviderCall records the outcome and latency of a provider request.
func (m *Metrics) RecordProviderCall(providerName, operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderCalls.WithLabelValues(providerName, operation, outcome).Inc()
	m.ProviderLatency.WithLabelValues(providerName, operation).Observe(d.Seconds())
}

// RecordCache counts a cache lookup.
func (m *Metrics) RecordCache(cache, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordStaleDiscard counts a superseded analysis.
func (m *Metrics) RecordStaleDiscard() {
	if m == nil {
		return
	}
	m.StaleDiscarded.Inc()
}
