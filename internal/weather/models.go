// Package weather provides normalized weather and solar irradiance data for
// the weather-driven scoring strategy.
package weather

import (
	"errors"
	"time"
)

// Weather errors.
var (
	ErrDataUnavailable    = errors.New("weather data unavailable")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Snapshot is the current weather at a point. Optional readings are nil when
// the provider did not report them.
type Snapshot struct {
	Lat float64
	Lng float64

	WindSpeedMs      float64  // m/s
	WindDirectionDeg float64  // degrees (0=N, 90=E, 180=S, 270=W)
	WindGustMs       *float64 // m/s

	// CloudCoverPct is 0-100.
	CloudCoverPct float64

	PressureHpa float64

	UVIndex          *float64
	DailyWindSpeedMs *float64

	TemperatureC float64
	HumidityPct  float64

	Condition   Condition
	Description string

	ObservedAt time.Time
	FetchedAt  time.Time
}

// Irradiance is the daily solar irradiance forecast for one date, in Wh/m².
type Irradiance struct {
	Lat  float64
	Lng  float64
	Date time.Time

	ClearSkyGHI  float64
	ClearSkyDNI  float64
	ClearSkyDHI  float64
	CloudySkyGHI float64
	CloudySkyDNI float64
	CloudySkyDHI float64

	FetchedAt time.Time
}

// Condition represents the general weather condition.
type Condition string

const (
	ConditionClear        Condition = "CLEAR"
	ConditionClouds       Condition = "CLOUDS"
	ConditionRain         Condition = "RAIN"
	ConditionDrizzle      Condition = "DRIZZLE"
	ConditionThunderstorm Condition = "THUNDERSTORM"
	ConditionSnow         Condition = "SNOW"
	ConditionMist         Condition = "MIST"
	ConditionFog          Condition = "FOG"
	ConditionHaze         Condition = "HAZE"
	ConditionUnknown      Condition = "UNKNOWN"
)

// Validate reports whether the snapshot is complete enough to score.
func (s *Snapshot) Validate() error {
	if s.WindSpeedMs < 0 || s.CloudCoverPct < 0 || s.CloudCoverPct > 100 || s.PressureHpa <= 0 {
		return ErrMalformedSnapshot
	}
	return nil
}

// Validate reports whether the irradiance values are usable.
func (i *Irradiance) Validate() error {
	if i.ClearSkyGHI < 0 || i.CloudySkyGHI < 0 {
		return ErrMalformedIrradiance
	}
	return nil
}

// Validation errors for provider payloads.
var (
	ErrMalformedSnapshot   = errors.New("malformed weather snapshot")
	ErrMalformedIrradiance = errors.New("malformed irradiance data")
)

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
