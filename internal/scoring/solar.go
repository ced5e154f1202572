package scoring

import (
	"math"

	"github.com/ventosol/ventosol/internal/terrain"
	"github.com/ventosol/ventosol/internal/weather"
)

// MaxPracticalGHI is the daily GHI (Wh/m²) treated as a 100 solar score.
const MaxPracticalGHI = 7000.0

type solarScore struct {
	score       float64
	description string
}

func heuristicSolar(loc Location) solarScore {
	base := terrain.LookupSolar(loc.Terrain)
	absLat := math.Abs(loc.Lat)

	return solarScore{
		score:       clamp(base.Base+SolarLatitudeAdjustment(loc.Lat)-absLat*0.3, 0, 100),
		description: base.Description,
	}
}

// SolarLatitudeAdjustment blends sun angle, seasonal swing and day length
// into a 0-30 bonus that shrinks toward the poles.
func SolarLatitudeAdjustment(lat float64) float64 {
	absLat := math.Abs(lat)
	cosFactor := math.Cos(absLat * math.Pi / 180)
	seasonal := 1 - absLat/90*0.3
	dayLength := 1 - absLat/90*0.2
	return (cosFactor*0.6 + seasonal*0.25 + dayLength*0.15) * 30
}

// ActualGHI interpolates between clear-sky and cloudy-sky irradiance by cloud fraction.
func ActualGHI(irr weather.Irradiance, cloudCoverPct float64) float64 {
	cloud := clamp(cloudCoverPct, 0, 100) / 100
	return irr.ClearSkyGHI*(1-cloud) + irr.CloudySkyGHI*cloud
}

func irradianceSolar(snap weather.Snapshot, irr weather.Irradiance) solarScore {
	ghi := math.Max(0, ActualGHI(irr, snap.CloudCoverPct))
	score := math.Min(100, math.Round(ghi/MaxPracticalGHI*100))

	var description string
	switch {
	case ghi > 3000:
		description = "Excellent solar potential with high irradiance levels"
	case ghi > 2000:
		description = "Very good solar potential with good irradiance levels"
	case ghi > 1000:
		description = "Moderate solar potential"
	default:
		description = "Limited solar potential due to low irradiance levels"
	}

	switch {
	case snap.CloudCoverPct > 70:
		description += ". Heavy cloud cover is currently reducing efficiency"
	case snap.CloudCoverPct > 30:
		description += ". Partial cloud cover is slightly reducing efficiency"
	default:
		description += ". Clear skies are optimal for solar generation"
	}

	return solarScore{
		score:       clamp(score, 0, 100),
		description: description,
	}
}
