// Package sky answers "what can I see from here right now": the Moon and
// bright planets above the horizon, plus a handful of bright stars once the
// sky is dark enough.
package sky

import (
	"strings"
	"time"

	"github.com/litescript/ls-skyscope/internal/astro"
	"github.com/litescript/ls-skyscope/internal/ephem"
)

// ObjectType classifies a visible object.
type ObjectType string

const (
	TypePlanet ObjectType = "planet"
	TypeStar   ObjectType = "star"
	TypeMoon   ObjectType = "moon"
	TypeSun    ObjectType = "sun" // never emitted: the Sun is not registered
)

// VisibleObject is one entry of a query result.
type VisibleObject struct {
	Name          string     `json:"name"`
	Type          ObjectType `json:"type"`
	Constellation string     `json:"constellation"`
	Altitude      float64    `json:"altitude"`  // degrees above the horizon
	Azimuth       float64    `json:"azimuth"`   // degrees, 0=N, 90=E
	Magnitude     float64    `json:"magnitude"` // computed for bodies, catalog value for stars
	Phase         *float64   `json:"phase,omitempty"`
}

// Observation is the full answer of one query.
type Observation struct {
	Observer    astro.Observer
	Time        time.Time // UTC
	SunAltitude float64
	Twilight    astro.Twilight
	Dark        bool
	Objects     []VisibleObject
}

// CatalogStar is a star reported once the Sun is low enough. Its magnitude
// is a fixed catalog value, never recomputed.
type CatalogStar struct {
	Name          string
	Constellation string
	Magnitude     float64
}

var catalog = []CatalogStar{
	{Name: "Sirius", Constellation: "Canis Major", Magnitude: -1.46},
	{Name: "Vega", Constellation: "Lyra", Magnitude: 0.03},
	{Name: "Arcturus", Constellation: "Boötes", Magnitude: -0.05},
	{Name: "Rigel", Constellation: "Orion", Magnitude: 0.13},
	{Name: "Betelgeuse", Constellation: "Orion", Magnitude: 0.45},
}

// Catalog returns the bright-star catalog in reporting order.
func Catalog() []CatalogStar {
	out := make([]CatalogStar, len(catalog))
	copy(out, catalog)
	return out
}

var registry = []ephem.BodyID{
	ephem.BodyMoon,
	ephem.BodyMars,
	ephem.BodyVenus,
	ephem.BodyJupiter,
	ephem.BodySaturn,
}

// Registry returns the solar-system bodies checked by every query, in
// reporting order.
func Registry() []ephem.BodyID {
	out := make([]ephem.BodyID, len(registry))
	copy(out, registry)
	return out
}

// typeOf maps a body to its record type: the Sun and Moon are their own
// type, everything else is a planet.
func typeOf(body ephem.BodyID) ObjectType {
	switch body {
	case ephem.BodySun:
		return TypeSun
	case ephem.BodyMoon:
		return TypeMoon
	default:
		return TypePlanet
	}
}

// displayName capitalizes a body name: "jupiter" -> "Jupiter".
func displayName(body ephem.BodyID) string {
	s := body.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
