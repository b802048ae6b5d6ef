package ephem

import (
	"fmt"

	"github.com/litescript/ls-skyscope/internal/astro"
)

// BodyID is the NAIF SPICE ID of a solar-system body.
type BodyID int

// NAIF IDs of the bodies the engines know about. Planets use the planet
// centre, not the system barycentre.
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
const (
	BodySun     BodyID = 10
	BodyMoon    BodyID = 301
	BodyVenus   BodyID = 299
	BodyMars    BodyID = 499
	BodyJupiter BodyID = 599
	BodySaturn  BodyID = 699
)

// BodyInfo describes a known body.
type BodyInfo struct {
	ID       BodyID
	Name     string // lowercase identifier, e.g. "jupiter"
	Planet   astro.Planet
	IsPlanet bool
}

// Bodies is the canonical list of known bodies.
var Bodies = []BodyInfo{
	{ID: BodySun, Name: "sun"},
	{ID: BodyMoon, Name: "moon"},
	{ID: BodyVenus, Name: "venus", Planet: astro.PlanetVenus, IsPlanet: true},
	{ID: BodyMars, Name: "mars", Planet: astro.PlanetMars, IsPlanet: true},
	{ID: BodyJupiter, Name: "jupiter", Planet: astro.PlanetJupiter, IsPlanet: true},
	{ID: BodySaturn, Name: "saturn", Planet: astro.PlanetSaturn, IsPlanet: true},
}

// BodiesByID maps NAIF IDs to body info for quick lookup.
var BodiesByID = func() map[BodyID]BodyInfo {
	m := make(map[BodyID]BodyInfo, len(Bodies))
	for _, b := range Bodies {
		m[b.ID] = b
	}
	return m
}()

// String returns the lowercase body name, or the numeric ID if unknown.
func (b BodyID) String() string {
	if info, ok := BodiesByID[b]; ok {
		return info.Name
	}
	return fmt.Sprintf("body(%d)", int(b))
}
