// Package terrain holds the terrain classification and the baseline wind and
// solar potential catalog used by the scoring engine.
package terrain

import "strings"

// Type is a coarse land-cover classification.
type Type string

const (
	Coastal   Type = "coastal"
	Mountains Type = "mountains"
	Plains    Type = "plains"
	Desert    Type = "desert"
	Arctic    Type = "arctic"
	Temperate Type = "temperate"
	Tropical  Type = "tropical"
	Suburban  Type = "suburban"
	Forest    Type = "forest"
	Urban     Type = "urban"
)

// Default is used whenever a terrain cannot be determined.
const Default = Temperate

var allTypes = []Type{
	Coastal, Mountains, Plains, Desert, Arctic,
	Temperate, Tropical, Suburban, Forest, Urban,
}

// All returns every terrain type in a stable order.
func All() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t is one of the known terrain types.
func (t Type) Valid() bool {
	_, ok := windPotential[t]
	return ok
}

// OrDefault returns t if it is known, otherwise Default.
func (t Type) OrDefault() Type {
	if t.Valid() {
		return t
	}
	return Default
}

// Parse converts free text into a terrain type. Unknown or empty input yields Default.
func Parse(s string) Type {
	return Type(strings.ToLower(strings.TrimSpace(s))).OrDefault()
}

// AddressTags are the OSM address fields used for reverse-geocode classification.
type AddressTags struct {
	Natural string
	Landuse string
	Place   string
}

// FromAddressTags classifies a reverse-geocoded point from its OSM tags.
func FromAddressTags(tags AddressTags) Type {
	switch {
	case tags.Natural == "beach" || tags.Natural == "coastline":
		return Coastal
	case tags.Natural == "mountain" || tags.Natural == "peak":
		return Mountains
	case tags.Landuse == "forest":
		return Forest
	case tags.Place == "city":
		return Urban
	case tags.Place == "suburb":
		return Suburban
	default:
		return Default
	}
}

// FromDisplayName classifies a forward-geocoded place from keywords in its
// display name. The first matching rule wins.
func FromDisplayName(name string) Type {
	n := strings.ToLower(name)
	switch {
	case containsAny(n, "desert", "sahara"):
		return Desert
	case containsAny(n, "coast", "beach", "bay"):
		return Coastal
	case containsAny(n, "mountain", "alps", "peak"):
		return Mountains
	case containsAny(n, "forest", "woods"):
		return Forest
	case containsAny(n, "city", "downtown"):
		return Urban
	default:
		return Default
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
