package scoring

import (
	"math"

	"github.com/ventosol/ventosol/internal/geofactor"
	"github.com/ventosol/ventosol/internal/terrain"
	"github.com/ventosol/ventosol/internal/weather"
)

// Terrain dominates the heuristic wind score; the location factors adjust it.
const (
	terrainShare = 0.7
	factorShare  = 0.3
)

type windScore struct {
	score       float64
	description string
	factors     WindFactors
}

func heuristicWind(loc Location) windScore {
	base := terrain.LookupWind(loc.Terrain)

	factors := WindFactors{
		Latitude: geofactor.SeasonalWindFactor(loc.Lat),
		Altitude: geofactor.EstimateAltitude(loc.Lat, loc.Lng, loc.Terrain),
		Coastal:  geofactor.CoastalProximity(loc.Lat, loc.Lng),
		Seasonal: geofactor.SeasonalVariation(loc.Lat),
	}
	combined := weightsFor(loc.Terrain).combine(factors)
	score := math.Round(base.Base*terrainShare + combined*factorShare)

	description := base.Description
	if factors.Coastal > 70 {
		description += ". Proximity to the coast increases wind potential"
	}
	if factors.Altitude > 70 {
		description += ". Elevation contributes to stronger winds"
	}
	if math.Abs(loc.Lat) > 45 {
		description += ". High latitude brings stronger but more seasonal winds"
	}

	return windScore{
		score:       clamp(score, 0, 100),
		description: description,
		factors:     factors,
	}
}

// Fallback gust factor when the provider reports no gust.
const defaultGustFactor = 80.0

func weatherWind(snap weather.Snapshot) windScore {
	speed := math.Max(0, snap.WindSpeedMs)

	speedFactor := windSpeedFactor(speed)
	gustFactor := windGustFactor(speed, snap.WindGustMs)
	pressureFactor := clamp(100-(snap.PressureHpa-900)/2, 0, 100)

	score := math.Round(speedFactor*0.7 + gustFactor*0.2 + pressureFactor*0.1)

	var description string
	switch {
	case speed < 3:
		description = "Low wind speeds, minimal energy generation potential"
	case speed < 7:
		description = "Moderate wind speeds, suitable for small to medium turbines"
	case speed < 12:
		description = "Good wind speeds, excellent for energy generation"
	default:
		description = "Very high wind speeds, optimal for wind energy (may require turbine cut-out protection)"
	}
	if snap.WindGustMs != nil && *snap.WindGustMs > speed*1.5 {
		description += ". Gusty conditions may affect turbine efficiency"
	}

	return windScore{
		score:       clamp(score, 0, 100),
		description: description,
	}
}

// windSpeedFactor maps m/s to 0-100: low below 3, moderate to 7, good to 12, excellent above.
func windSpeedFactor(speed float64) float64 {
	switch {
	case speed < 3:
		return speed * 20
	case speed < 7:
		return 60 + (speed-3)*10
	case speed < 12:
		return 80 + (speed-7)*4
	default:
		return 100
	}
}

// windGustFactor rewards steady wind: the further gusts exceed the mean speed,
// the lower the factor.
func windGustFactor(speed float64, gust *float64) float64 {
	if gust == nil || *gust == 0 {
		return defaultGustFactor
	}
	if speed == 0 {
		return 0
	}
	return clamp(100-math.Min(100, (*gust-speed)/speed*100), 0, 100)
}
