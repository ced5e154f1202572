package scoring

import "math"

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CardinalDirection converts a wind direction in degrees to a 16-point compass label.
func CardinalDirection(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(d/22.5)) % len(compassPoints)
	return compassPoints[idx]
}
