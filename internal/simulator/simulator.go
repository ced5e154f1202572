// Package simulator computes the indicative energy output and efficiency
// shown for the wind and solar dashboard controls.
package simulator

import (
	"fmt"
	"math"

	"github.com/ventosol/ventosol/internal/scoring"
)

// Conditions are the dashboard control values.
type Conditions struct {
	WindSpeed     float64 `json:"windSpeed"`     // 0-50
	WindDirection float64 `json:"windDirection"` // 0-360 degrees
	SunIntensity  float64 `json:"sunIntensity"`  // 0-100
	SunAngle      float64 `json:"sunAngle"`      // 0-90 degrees
	CloudCover    float64 `json:"cloudCover"`    // 0-100
}

// Range is an inclusive bound for one control.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Control ranges.
var (
	WindSpeedRange     = Range{0, 50}
	WindDirectionRange = Range{0, 360}
	SunIntensityRange  = Range{0, 100}
	SunAngleRange      = Range{0, 90}
	CloudCoverRange    = Range{0, 100}
)

// DefaultConditions returns the initial control values.
func DefaultConditions() Conditions {
	return Conditions{
		WindSpeed:     5,
		WindDirection: 45,
		SunIntensity:  85,
		SunAngle:      60,
		CloudCover:    10,
	}
}

// RangeError reports a control value outside its range.
type RangeError struct {
	Field string
	Value float64
	Range Range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g, got %g", e.Field, e.Range.Min, e.Range.Max, e.Value)
}

// Validate checks every control against its range.
func (c Conditions) Validate() error {
	checks := []struct {
		field string
		value float64
		rng   Range
	}{
		{"windSpeed", c.WindSpeed, WindSpeedRange},
		{"windDirection", c.WindDirection, WindDirectionRange},
		{"sunIntensity", c.SunIntensity, SunIntensityRange},
		{"sunAngle", c.SunAngle, SunAngleRange},
		{"cloudCover", c.CloudCover, CloudCoverRange},
	}
	for _, chk := range checks {
		if math.IsNaN(chk.value) || chk.value < chk.rng.Min || chk.value > chk.rng.Max {
			return &RangeError{Field: chk.field, Value: chk.value, Range: chk.rng}
		}
	}
	return nil
}

// Output is an indicative percentage pair for one technology.
type Output struct {
	EnergyOutput float64 `json:"energyOutput"`
	Efficiency   float64 `json:"efficiency"`
}

// Result holds both technologies for one set of conditions.
type Result struct {
	Conditions       Conditions `json:"conditions"`
	Wind             Output     `json:"wind"`
	Solar            Output     `json:"solar"`
	WindCompassPoint string     `json:"windCompassPoint"`
}

// Simulate computes wind and solar output for validated conditions.
func Simulate(c Conditions) Result {
	return Result{
		Conditions:       c,
		Wind:             Wind(c),
		Solar:            Solar(c),
		WindCompassPoint: scoring.CardinalDirection(c.WindDirection),
	}
}

// Wind scales output linearly with speed up to the 50 m/s maximum. Efficiency
// peaks when the direction is perpendicular to the 0-180 axis.
func Wind(c Conditions) Output {
	return Output{
		EnergyOutput: math.Round(c.WindSpeed / WindSpeedRange.Max * 100),
		Efficiency:   math.Round(90 - math.Abs(math.Mod(c.WindDirection, 180)-90)/2),
	}
}

// Solar output peaks at a 45 degree sun angle and falls with cloud cover.
func Solar(c Conditions) Output {
	angleOffset := math.Abs(c.SunAngle - 45)
	return Output{
		EnergyOutput: math.Round(c.SunIntensity * (90 - angleOffset) / 90 * (100 - c.CloudCover) / 100),
		Efficiency:   math.Round(100 - c.CloudCover/2 - angleOffset/2),
	}
}
