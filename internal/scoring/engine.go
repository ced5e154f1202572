package scoring

import (
	"math"

	"github.com/ventosol/ventosol/internal/weather"
)

// HysteresisBand is the score margin one technology needs over the other
// before it is recommended alone.
const HysteresisBand = 15.0

// Engine scores locations. It holds no state; the zero value is ready to use
// and every method is a pure function of its arguments.
type Engine struct{}

// NewEngine creates a scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Analyze scores a location from its terrain and coordinates alone.
func (e *Engine) Analyze(loc Location) Result {
	loc.Terrain = loc.Terrain.OrDefault()

	wind := heuristicWind(loc)
	solar := heuristicSolar(loc)

	return Result{
		Location:         loc,
		WindScore:        wind.score,
		SolarScore:       solar.score,
		WindDescription:  wind.description,
		SolarDescription: solar.description,
		WindFactors:      &wind.factors,
		Recommendation:   Recommend(solar.score, wind.score),
		Strategy:         StrategyHeuristic,
	}
}

// AnalyzeWeather scores a location from current weather and daily irradiance.
func (e *Engine) AnalyzeWeather(loc Location, snap weather.Snapshot, irr weather.Irradiance) Result {
	loc.Terrain = loc.Terrain.OrDefault()

	wind := weatherWind(snap)
	solar := irradianceSolar(snap, irr)

	return Result{
		Location:         loc,
		WindScore:        wind.score,
		SolarScore:       solar.score,
		WindDescription:  wind.description,
		SolarDescription: solar.description,
		Recommendation:   Recommend(solar.score, wind.score),
		Strategy:         StrategyWeather,
	}
}

// Recommend picks solar or wind only when one leads by more than HysteresisBand.
func Recommend(solarScore, windScore float64) Recommendation {
	switch {
	case solarScore > windScore+HysteresisBand:
		return RecommendSolar
	case windScore > solarScore+HysteresisBand:
		return RecommendWind
	default:
		return RecommendBoth
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
