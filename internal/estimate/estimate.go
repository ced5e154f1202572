// Package estimate projects monthly energy generation, savings and payback
// for a small solar array and a small wind turbine.
package estimate

import (
	"errors"
	"math"
)

const (
	airDensity     = 1.225 // kg/m³
	daysPerMonth   = 30
	secondsPerDay  = 24 * 3600
	energyDivisor  = 1e6
	maxCoveragePct = 100
)

// Inputs are the climate readings and installation parameters.
// A nil or zero UV index or wind speed yields no generation for that technology.
type Inputs struct {
	UVIndex     *float64 `json:"uvIndex"`
	WindSpeedMs *float64 `json:"windSpeed"`

	PanelAreaM2           float64 `json:"panelArea"`
	RotorRadiusM          float64 `json:"rotorRadius"`
	MonthlyConsumptionKWh float64 `json:"monthlyConsumption"`
	CostPerKWh            float64 `json:"costPerKWh"`
	SolarInstallCost      float64 `json:"solarInstallCost"`
	WindInstallCost       float64 `json:"windInstallCost"`
}

// DefaultInputs returns the default installation parameters with no climate readings.
func DefaultInputs() Inputs {
	return Inputs{
		PanelAreaM2:           10,
		RotorRadiusM:          2,
		MonthlyConsumptionKWh: 150,
		CostPerKWh:            0.75,
		SolarInstallCost:      20000,
		WindInstallCost:       25000,
	}
}

// Validation errors.
var (
	ErrNegativeInput      = errors.New("area, radius, costs and climate readings must not be negative")
	ErrInvalidConsumption = errors.New("monthly consumption must be greater than zero")
)

// Validate checks the inputs.
func (in Inputs) Validate() error {
	for _, v := range []float64{in.PanelAreaM2, in.RotorRadiusM, in.CostPerKWh, in.SolarInstallCost, in.WindInstallCost} {
		if math.IsNaN(v) || v < 0 {
			return ErrNegativeInput
		}
	}
	for _, p := range []*float64{in.UVIndex, in.WindSpeedMs} {
		if p != nil && (math.IsNaN(*p) || *p < 0) {
			return ErrNegativeInput
		}
	}
	if math.IsNaN(in.MonthlyConsumptionKWh) || in.MonthlyConsumptionKWh <= 0 {
		return ErrInvalidConsumption
	}
	return nil
}

// Projection is the monthly outlook for one technology.
type Projection struct {
	Efficiency     float64 `json:"efficiency"`
	MonthlyKWh     float64 `json:"monthlyKWh"`
	MonthlySavings float64 `json:"monthlySavings"`
	// PaybackMonths is nil when the technology generates nothing.
	PaybackMonths *float64 `json:"paybackMonths"`
	CoveragePct   float64  `json:"coveragePct"`
}

// Estimate is the combined projection.
type Estimate struct {
	Inputs      Inputs     `json:"inputs"`
	MonthlyCost float64    `json:"monthlyCost"`
	Solar       Projection `json:"solar"`
	Wind        Projection `json:"wind"`
}

// Calculate projects both technologies. Inputs must be valid.
func Calculate(in Inputs) Estimate {
	solarEff := SolarEfficiency(in.UVIndex)
	windEff := WindEfficiency(in.WindSpeedMs)

	return Estimate{
		Inputs:      in,
		MonthlyCost: in.MonthlyConsumptionKWh * in.CostPerKWh,
		Solar:       project(in, solarEff, SolarKWh(in.UVIndex, in.PanelAreaM2), in.SolarInstallCost),
		Wind:        project(in, windEff, WindKWh(in.WindSpeedMs, in.RotorRadiusM), in.WindInstallCost),
	}
}

func project(in Inputs, eff, kwh, installCost float64) Projection {
	savings := kwh * in.CostPerKWh

	var payback *float64
	if kwh > 0 && savings > 0 {
		months := installCost / savings
		payback = &months
	}

	return Projection{
		Efficiency:     eff,
		MonthlyKWh:     kwh,
		MonthlySavings: savings,
		PaybackMonths:  payback,
		CoveragePct:    math.Min(maxCoveragePct, kwh/in.MonthlyConsumptionKWh*100),
	}
}

// SolarEfficiency is the panel efficiency assumed for a UV index.
func SolarEfficiency(uvIndex *float64) float64 {
	if uvIndex == nil || *uvIndex == 0 {
		return 0
	}
	switch uv := *uvIndex; {
	case uv > 10:
		return 0.21
	case uv > 7:
		return 0.19
	case uv > 4:
		return 0.17
	default:
		return 0.15
	}
}

// WindEfficiency is the turbine efficiency assumed for a wind speed.
func WindEfficiency(speedMs *float64) float64 {
	if speedMs == nil || *speedMs == 0 {
		return 0
	}
	switch v := *speedMs; {
	case v > 10:
		return 0.45
	case v > 6:
		return 0.4
	case v > 3:
		return 0.35
	default:
		return 0.2
	}
}

// SolarKWh is the monthly solar generation for a UV index and panel area.
func SolarKWh(uvIndex *float64, areaM2 float64) float64 {
	eff := SolarEfficiency(uvIndex)
	if eff == 0 {
		return 0
	}
	return *uvIndex * areaM2 * eff * daysPerMonth
}

// WindKWh is the monthly wind generation for a mean speed and rotor radius,
// from the kinetic power 0.5·ρ·A·v³.
func WindKWh(speedMs *float64, radiusM float64) float64 {
	eff := WindEfficiency(speedMs)
	if eff == 0 {
		return 0
	}
	v := *speedMs
	power := 0.5 * airDensity * math.Pi * radiusM * radiusM * v * v * v * eff
	return power * secondsPerDay * daysPerMonth / energyDivisor
}
