package observability_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/ventosol/ventosol/internal/observability"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.RecordAnalysis("heuristic", "solar")
	m.RecordAnalysis("heuristic", "solar")
	m.RecordProviderCall("nominatim", "search", "ok", 120*time.Millisecond)
	m.RecordCache("weather", "hit")
	m.RecordStaleDiscard()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Analyses.WithLabelValues("heuristic", "solar")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderCalls.WithLabelValues("nominatim", "search", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("weather", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StaleDiscarded))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics

	assert.NotPanics(t, func() {
		m.RecordAnalysis("weather", "wind")
		m.RecordProviderCall("owm", "current", "network", time.Second)
		m.RecordCache("geocoder", "miss")
		m.RecordStaleDiscard()
	})
}
