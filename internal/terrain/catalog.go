package terrain

// Potential is a baseline energy potential for one terrain type.
type Potential struct {
	// Base is the baseline score (0-100).
	Base        float64
	Description string
}

var windPotential = map[Type]Potential{
	Coastal:   {85, "Excellent due to constant sea breezes and unobstructed wind flow"},
	Mountains: {90, "Very high due to pressure gradients and wind funneling through passes"},
	Plains:    {75, "Good due to unobstructed terrain and consistent wind patterns"},
	Desert:    {65, "Moderate to good, especially at night due to temperature differences"},
	Arctic:    {80, "Strong winds, but extreme conditions can limit turbine operation"},
	Temperate: {60, "Moderate, with wind patterns that vary with the seasons"},
	Tropical:  {55, "Moderate, but affected by seasonal monsoons and trade winds"},
	Suburban:  {40, "Reduced due to buildings and structures that create turbulence"},
	Forest:    {30, "Low due to trees blocking and disrupting wind flow"},
	Urban:     {25, "Very low due to buildings that create turbulence and block the wind"},
}

var solarPotential = map[Type]Potential{
	Desert:    {95, "Excellent due to clear skies and high direct sunlight"},
	Tropical:  {85, "Very good, but can be affected by cloud cover and seasonal rains"},
	Coastal:   {75, "Good, but can be affected by fog and marine layers in some regions"},
	Plains:    {80, "Good solar exposure with minimal obstructions"},
	Suburban:  {70, "Fair, with some shading from buildings and trees"},
	Temperate: {65, "Moderate, with significant seasonal variation"},
	Urban:     {60, "Reduced due to air pollution and shadows from tall buildings"},
	Mountains: {70, "Variable, depending on slope orientation and cloud cover"},
	Forest:    {50, "Limited due to shade from the tree canopy"},
	Arctic:    {35, "Very low due to the low sun angle and long periods of darkness"},
}

// Base altitude estimate in metres.
var baseAltitude = map[Type]float64{
	Mountains: 2000,
	Plains:    500,
	Desert:    800,
	Coastal:   50,
	Forest:    600,
	Urban:     100,
	Suburban:  150,
	Tropical:  300,
	Arctic:    400,
	Temperate: 300,
}

// LookupWind returns the baseline wind potential for t, falling back to temperate.
func LookupWind(t Type) Potential {
	return windPotential[t.OrDefault()]
}

// LookupSolar returns the baseline solar potential for t, falling back to temperate.
func LookupSolar(t Type) Potential {
	return solarPotential[t.OrDefault()]
}

// BaseAltitude returns the nominal altitude in metres for t, falling back to temperate.
func BaseAltitude(t Type) float64 {
	return baseAltitude[t.OrDefault()]
}
