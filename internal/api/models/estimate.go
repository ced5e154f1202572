package models

import (
	"github.com/ventosol/ventosol/internal/estimate"
)

// EstimateRequest is the body of POST /v1/estimates. UV index and wind speed
// are looked up for the coordinate when omitted; installation parameters
// default to a 10 m² array and a 2 m rotor.
type EstimateRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`

	UVIndex   *float64 `json:"uvIndex"`
	WindSpeed *float64 `json:"windSpeed"`

	PanelArea          *float64 `json:"panelArea"`
	RotorRadius        *float64 `json:"rotorRadius"`
	MonthlyConsumption *float64 `json:"monthlyConsumption"`
	CostPerKWh         *float64 `json:"costPerKWh"`
	SolarInstallCost   *float64 `json:"solarInstallCost"`
	WindInstallCost    *float64 `json:"windInstallCost"`
}

// Validate checks the coordinate; the estimator validates the rest.
func (r EstimateRequest) Validate() []FieldError {
	return validateCoordinates(r.Lat, r.Lng)
}

// Inputs merges the request over the default installation parameters.
func (r EstimateRequest) Inputs() estimate.Inputs {
	in := estimate.DefaultInputs()
	in.UVIndex = r.UVIndex
	in.WindSpeedMs = r.WindSpeed

	for _, f := range []struct {
		dst *float64
		src *float64
	}{
		{&in.PanelAreaM2, r.PanelArea},
		{&in.RotorRadiusM, r.RotorRadius},
		{&in.MonthlyConsumptionKWh, r.MonthlyConsumption},
		{&in.CostPerKWh, r.CostPerKWh},
		{&in.SolarInstallCost, r.SolarInstallCost},
		{&in.WindInstallCost, r.WindInstallCost},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return in
}

// Estimate is the body returned by POST /v1/estimates.
type Estimate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	estimate.Estimate
	GeneratedAt Timestamp `json:"generatedAt"`
}
