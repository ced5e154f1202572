package geofactor

import (
	"math"

	"github.com/ventosol/ventosol/internal/terrain"
)

// EstimateAltitude returns a 0-100 altitude factor for a coordinate and terrain.
func EstimateAltitude(lat, lng float64, t terrain.Type) float64 {
	return AltitudeScore(EstimateAltitudeMeters(lat, lng, t))
}

// EstimateAltitudeMeters returns the synthetic altitude in metres.
func EstimateAltitudeMeters(lat, lng float64, t terrain.Type) float64 {
	latVariation := math.Sin(lat*0.1) * 300
	lngVariation := math.Cos(lng*0.1) * 300
	return terrain.BaseAltitude(t) + latVariation + lngVariation
}

// AltitudeScore maps metres to 0-100. The score rises linearly to 100 at
// 3000 m and then decays because thinner air carries less energy.
func AltitudeScore(meters float64) float64 {
	var score float64
	if meters <= 3000 {
		score = meters / 3000 * 100
	} else {
		score = 100 - (meters-3000)/2000*30
	}
	return clamp(score, 0, 100)
}

// SeasonalWindFactor models latitude wind belts: steady trade winds below
// 30 degrees, the jet-stream belt between 30 and 60, and variable polar winds above.
func SeasonalWindFactor(lat float64) float64 {
	absLat := math.Abs(lat)
	switch {
	case absLat < 30:
		return 70 + absLat/30*20
	case absLat < 60:
		return 80 + (absLat-30)/30*15
	default:
		return 90 - (absLat-60)/30*10
	}
}

// SeasonalVariation is 85 outside the tropics and 70 inside.
func SeasonalVariation(lat float64) float64 {
	if math.Abs(lat) > 30 {
		return 85
	}
	return 70
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
