// Package scoring turns location, terrain and weather inputs into wind and
// solar potential scores and a technology recommendation.
package scoring

import (
	"github.com/ventosol/ventosol/internal/terrain"
)

// Location is the point being analyzed.
type Location struct {
	Lat     float64      `json:"lat"`
	Lng     float64      `json:"lng"`
	Name    string       `json:"name"`
	Terrain terrain.Type `json:"terrain"`
}

// WindFactors are the 0-100 sub-scores behind a heuristic wind score.
type WindFactors struct {
	Latitude float64 `json:"latitude"`
	Altitude float64 `json:"altitude"`
	Coastal  float64 `json:"coastal"`
	Seasonal float64 `json:"seasonal"`
}

// Recommendation is the suggested technology for a location.
type Recommendation string

const (
	RecommendSolar Recommendation = "solar"
	RecommendWind  Recommendation = "wind"
	RecommendBoth  Recommendation = "both"
)

// Strategy identifies which input variant produced a result.
type Strategy string

const (
	StrategyHeuristic Strategy = "heuristic"
	StrategyWeather   Strategy = "weather"
)

// Result is the outcome of one analysis. Results are values and are replaced,
// never mutated, by the next analysis.
type Result struct {
	Location         Location       `json:"location"`
	WindScore        float64        `json:"windScore"`
	SolarScore       float64        `json:"solarScore"`
	WindDescription  string         `json:"windDescription"`
	SolarDescription string         `json:"solarDescription"`
	WindFactors      *WindFactors   `json:"windFactors,omitempty"`
	Recommendation   Recommendation `json:"recommendation"`
	Strategy         Strategy       `json:"strategy"`
}

// weights is a set of wind factor weights summing to 1.
type weights struct {
	latitude float64
	altitude float64
	coastal  float64
	seasonal float64
}

var terrainWeights = map[terrain.Type]weights{
	terrain.Coastal:   {0.2, 0.1, 0.6, 0.1},
	terrain.Mountains: {0.2, 0.6, 0.1, 0.1},
	terrain.Plains:    {0.4, 0.2, 0.2, 0.2},
	terrain.Desert:    {0.3, 0.3, 0.2, 0.2},
	terrain.Arctic:    {0.5, 0.2, 0.1, 0.2},
}

var defaultWeights = weights{0.3, 0.2, 0.3, 0.2}

func weightsFor(t terrain.Type) weights {
	if w, ok := terrainWeights[t]; ok {
		return w
	}
	return defaultWeights
}

func (w weights) combine(f WindFactors) float64 {
	return f.Latitude*w.latitude +
		f.Altitude*w.altitude +
		f.Coastal*w.coastal +
		f.Seasonal*w.seasonal
}
