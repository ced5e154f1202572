package simulator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventosol/ventosol/internal/simulator"
)

func TestSimulate_Defaults(t *testing.T) {
	c := simulator.DefaultConditions()
	require.NoError(t, c.Validate())

	result := simulator.Simulate(c)

	assert.Equal(t, 10.0, result.Wind.EnergyOutput)
	assert.Equal(t, 68.0, result.Wind.Efficiency)
	assert.Equal(t, 64.0, result.Solar.EnergyOutput)
	assert.Equal(t, 88.0, result.Solar.Efficiency)
	assert.Equal(t, "NE", result.WindCompassPoint)
	assert.Equal(t, c, result.Conditions)
}

func TestWind(t *testing.T) {
	tests := []struct {
		name           string
		speed, dir     float64
		wantOutput     float64
		wantEfficiency float64
	}{
		{"calm from north", 0, 0, 0, 45},
		{"max speed from east", 50, 90, 100, 90},
		{"south", 25, 180, 50, 45},
		{"west", 12.5, 270, 25, 90},
		{"full circle", 5, 360, 10, 45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := simulator.Wind(simulator.Conditions{WindSpeed: tc.speed, WindDirection: tc.dir})
			assert.Equal(t, tc.wantOutput, out.EnergyOutput)
			assert.Equal(t, tc.wantEfficiency, out.Efficiency)
		})
	}
}

func TestSolar(t *testing.T) {
	tests := []struct {
		name                     string
		intensity, angle, clouds float64
		wantOutput               float64
		wantEfficiency           float64
	}{
		{"ideal", 100, 45, 0, 100, 100},
		{"overcast", 100, 45, 100, 0, 50},
		{"horizon", 100, 0, 0, 50, 78},
		{"overhead", 80, 90, 50, 20, 53},
		{"dark", 0, 45, 0, 0, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := simulator.Solar(simulator.Conditions{SunIntensity: tc.intensity, SunAngle: tc.angle, CloudCover: tc.clouds})
			assert.Equal(t, tc.wantOutput, out.EnergyOutput)
			assert.Equal(t, tc.wantEfficiency, out.Efficiency)
		})
	}
}

func TestConditions_Validate(t *testing.T) {
	base := simulator.DefaultConditions()

	tests := []struct {
		name   string
		mutate func(*simulator.Conditions)
		field  string
	}{
		{"wind too fast", func(c *simulator.Conditions) { c.WindSpeed = 51 }, "windSpeed"},
		{"negative direction", func(c *simulator.Conditions) { c.WindDirection = -1 }, "windDirection"},
		{"intensity above 100", func(c *simulator.Conditions) { c.SunIntensity = 101 }, "sunIntensity"},
		{"angle above 90", func(c *simulator.Conditions) { c.SunAngle = 91 }, "sunAngle"},
		{"cloud NaN", func(c *simulator.Conditions) { c.CloudCover = math.NaN() }, "cloudCover"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)

			err := c.Validate()
			var rangeErr *simulator.RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tc.field, rangeErr.Field)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestConditions_ValidateBounds(t *testing.T) {
	assert.NoError(t, simulator.Conditions{}.Validate())
	assert.NoError(t, simulator.Conditions{
		WindSpeed: 50, WindDirection: 360, SunIntensity: 100, SunAngle: 90, CloudCover: 100,
	}.Validate())
}
