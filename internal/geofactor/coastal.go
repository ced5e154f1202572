// Package geofactor derives auxiliary wind factors from a coordinate.
//
// The estimators are deliberately coarse. Coastal proximity is measured
// against a small set of reference coastal cities, not real coastline data,
// and distances use a flat-earth approximation that is not geodesically
// exact. Altitude is synthesized from terrain type plus a sinusoidal
// perturbation, not read from an elevation model.
package geofactor

import (
	"math"
)

// kmPerDegree is the approximate length of one degree of latitude.
const kmPerDegree = 111.0

// coastalDecayKm is the distance at which the coastal factor reaches zero.
const coastalDecayKm = 1000.0

// Point is a named geographic coordinate.
type Point struct {
	Name string
	Lat  float64
	Lng  float64
}

var coastalReferences = []Point{
	// North America west coast
	{"San Francisco", 37.7749, -122.4194},
	{"Los Angeles", 34.0522, -118.2437},
	{"Seattle", 47.6062, -122.3321},

	// North America east coast
	{"New York", 40.7128, -74.006},
	{"Boston", 42.3601, -71.0589},
	{"Miami", 25.7617, -80.1918},

	// Europe
	{"London", 51.5074, -0.1278},
	{"Rome", 41.9028, 12.4964},
	{"Copenhagen", 55.6761, 12.5683},

	// Asia
	{"Tokyo", 35.6762, 139.6503},
	{"Hong Kong", 22.3193, 114.1694},
	{"Singapore", 1.3521, 103.8198},

	// Australia
	{"Sydney", -33.8688, 151.2093},
	{"Melbourne", -37.8136, 144.9631},

	// South America
	{"Rio de Janeiro", -22.9068, -43.1729},
	{"Lima", -12.0464, -77.0428},
}

// CoastalReferences returns the reference coastal points.
func CoastalReferences() []Point {
	out := make([]Point, len(coastalReferences))
	copy(out, coastalReferences)
	return out
}

// DistanceKm approximates the distance between (lat, lng) and p.
// The longitude delta is scaled by cos(lat) of the query point only.
func DistanceKm(lat, lng float64, p Point) float64 {
	dLat := (lat - p.Lat) * kmPerDegree
	dLng := (lng - p.Lng) * kmPerDegree * math.Cos(lat*math.Pi/180)
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// NearestCoastalReference returns the closest reference point and its distance in km.
func NearestCoastalReference(lat, lng float64) (Point, float64) {
	nearest := coastalReferences[0]
	minDist := math.MaxFloat64
	for _, p := range coastalReferences {
		if d := DistanceKm(lat, lng, p); d < minDist {
			minDist = d
			nearest = p
		}
	}
	return nearest, minDist
}

// CoastalProximity scores closeness to the coast from 0 to 100.
// The score decays linearly from 100 at a reference point to 0 at 1000 km.
func CoastalProximity(lat, lng float64) float64 {
	_, d := NearestCoastalReference(lat, lng)
	return math.Max(0, 100-d/(coastalDecayKm/100))
}
