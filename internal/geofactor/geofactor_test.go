package geofactor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ventosol/ventosol/internal/geofactor"
	"github.com/ventosol/ventosol/internal/terrain"
)

func TestCoastalProximity_AtReferencePoint(t *testing.T) {
	for _, p := range geofactor.CoastalReferences() {
		t.Run(p.Name, func(t *testing.T) {
			assert.InDelta(t, 100.0, geofactor.CoastalProximity(p.Lat, p.Lng), 1e-9)
		})
	}
}

func TestCoastalProximity_SanFranciscoBay(t *testing.T) {
	score := geofactor.CoastalProximity(37.8199, -122.4783)
	assert.Greater(t, score, 99.0)

	ref, d := geofactor.NearestCoastalReference(37.8199, -122.4783)
	assert.Equal(t, "San Francisco", ref.Name)
	assert.InDelta(t, 7.2, d, 0.1)
}

func TestCoastalProximity_MonotonicWithDistance(t *testing.T) {
	// Walk due south from Singapore; no other reference gets within range.
	prev := math.Inf(1)
	for step := 0; step <= 20; step++ {
		lat := 1.3521 - float64(step)*0.5
		score := geofactor.CoastalProximity(lat, 103.8198)
		assert.LessOrEqual(t, score, prev, "step %d", step)
		prev = score
	}
	assert.Equal(t, 0.0, prev)
}

func TestCoastalProximity_Range(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 15 {
		for lng := -180.0; lng <= 180; lng += 30 {
			score := geofactor.CoastalProximity(lat, lng)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestCoastalProximity_FarInland(t *testing.T) {
	// Central Sahara is thousands of km from every reference point.
	assert.Equal(t, 0.0, geofactor.CoastalProximity(27.1258, 2.4519))
}

func TestAltitudeScore(t *testing.T) {
	tests := []struct {
		meters float64
		want   float64
	}{
		{-500, 0},
		{0, 0},
		{1500, 50},
		{3000, 100},
		{5000, 70},
		{9000, 10},
		{20000, 0},
	}

	for _, tc := range tests {
		assert.InDelta(t, tc.want, geofactor.AltitudeScore(tc.meters), 1e-9, "meters=%v", tc.meters)
	}
}

func TestEstimateAltitude(t *testing.T) {
	meters := geofactor.EstimateAltitudeMeters(0, 0, terrain.Coastal)
	// sin(0)=0, cos(0)=1
	assert.InDelta(t, 350.0, meters, 1e-9)
	assert.InDelta(t, 350.0/3000*100, geofactor.EstimateAltitude(0, 0, terrain.Coastal), 1e-9)

	unknown := geofactor.EstimateAltitude(10, 20, "glacier")
	temperate := geofactor.EstimateAltitude(10, 20, terrain.Temperate)
	assert.Equal(t, temperate, unknown)
}

func TestEstimateAltitude_Range(t *testing.T) {
	for _, tt := range terrain.All() {
		for lat := -90.0; lat <= 90; lat += 10 {
			for lng := -180.0; lng <= 180; lng += 20 {
				score := geofactor.EstimateAltitude(lat, lng, tt)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 100.0)
			}
		}
	}
}

func TestSeasonalWindFactor(t *testing.T) {
	tests := []struct {
		lat  float64
		want float64
	}{
		{0, 70},
		{15, 80},
		{-15, 80},
		{29.999, 70 + 29.999/30*20},
		{30, 80},
		{45, 87.5},
		{60, 90},
		{75, 85},
		{90, 80},
		{-90, 80},
	}

	for _, tc := range tests {
		assert.InDelta(t, tc.want, geofactor.SeasonalWindFactor(tc.lat), 1e-9, "lat=%v", tc.lat)
	}
}

func TestSeasonalWindFactor_BoundariesUseUpperBand(t *testing.T) {
	// The bands are not continuous: the tropical band ends near 90 while the
	// mid-latitude band starts at 80, and the mid-latitude band ends near 95
	// while the polar band starts at 90.
	below30 := geofactor.SeasonalWindFactor(math.Nextafter(30, 0))
	assert.InDelta(t, 90.0, below30, 1e-6)
	assert.Equal(t, 80.0, geofactor.SeasonalWindFactor(30))

	below60 := geofactor.SeasonalWindFactor(math.Nextafter(60, 0))
	assert.InDelta(t, 95.0, below60, 1e-6)
	assert.Equal(t, 90.0, geofactor.SeasonalWindFactor(60))
}

func TestSeasonalVariation(t *testing.T) {
	assert.Equal(t, 70.0, geofactor.SeasonalVariation(0))
	assert.Equal(t, 70.0, geofactor.SeasonalVariation(30))
	assert.Equal(t, 70.0, geofactor.SeasonalVariation(-30))
	assert.Equal(t, 85.0, geofactor.SeasonalVariation(30.1))
	assert.Equal(t, 85.0, geofactor.SeasonalVariation(-78.6))
}
