package models

import (
	"errors"

	"github.com/ventosol/ventosol/internal/simulator"
)

// SimulationRequest is the body of POST /v1/simulations. Omitted controls
// take their dashboard defaults.
type SimulationRequest struct {
	WindSpeed     *float64 `json:"windSpeed"`
	WindDirection *float64 `json:"windDirection"`
	SunIntensity  *float64 `json:"sunIntensity"`
	SunAngle      *float64 `json:"sunAngle"`
	CloudCover    *float64 `json:"cloudCover"`
}

// Conditions merges the request over the default controls and validates the result.
func (r SimulationRequest) Conditions() (simulator.Conditions, []FieldError) {
	c := simulator.DefaultConditions()
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.WindSpeed, r.WindSpeed)
	set(&c.WindDirection, r.WindDirection)
	set(&c.SunIntensity, r.SunIntensity)
	set(&c.SunAngle, r.SunAngle)
	set(&c.CloudCover, r.CloudCover)

	if err := c.Validate(); err != nil {
		var rangeErr *simulator.RangeError
		if errors.As(err, &rangeErr) {
			return c, []FieldError{{Field: rangeErr.Field, Message: rangeErr.Error(), Code: "OUT_OF_RANGE"}}
		}
		return c, []FieldError{{Field: "body", Message: err.Error()}}
	}
	return c, nil
}

// SimulationRanges is the body of GET /v1/simulations/defaults.
type SimulationRanges struct {
	Defaults simulator.Conditions       `json:"defaults"`
	Ranges   map[string]simulator.Range `json:"ranges"`
}

// NewSimulationRanges describes the dashboard controls.
func NewSimulationRanges() SimulationRanges {
	return SimulationRanges{
		Defaults: simulator.DefaultConditions(),
		Ranges: map[string]simulator.Range{
			"windSpeed":     simulator.WindSpeedRange,
			"windDirection": simulator.WindDirectionRange,
			"sunIntensity":  simulator.SunIntensityRange,
			"sunAngle":      simulator.SunAngleRange,
			"cloudCover":    simulator.CloudCoverRange,
		},
	}
}
