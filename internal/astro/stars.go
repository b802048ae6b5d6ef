package astro

import "strings"

// Star represents a cataloged star with position and brightness.
type Star struct {
	Name          string  // Common name (e.g., "Sirius", "Vega")
	Constellation string  // IAU constellation name
	RAdeg         float64 // Right Ascension in degrees (J2000)
	DecDeg        float64 // Declination in degrees (J2000)
	Mag           float64 // Apparent visual magnitude (lower = brighter)
}

// namedStars is the star database the ephemeris resolves names against.
// Coordinates are J2000; proper motion is ignored.
var namedStars = []Star{
	{Name: "Sirius", Constellation: "Canis Major", RAdeg: 101.287, DecDeg: -16.716, Mag: -1.46},
	{Name: "Canopus", Constellation: "Carina", RAdeg: 95.988, DecDeg: -52.696, Mag: -0.74},
	{Name: "Arcturus", Constellation: "Boötes", RAdeg: 213.915, DecDeg: 19.182, Mag: -0.05},
	{Name: "Vega", Constellation: "Lyra", RAdeg: 279.235, DecDeg: 38.784, Mag: 0.03},
	{Name: "Capella", Constellation: "Auriga", RAdeg: 79.172, DecDeg: 45.998, Mag: 0.08},
	{Name: "Rigel", Constellation: "Orion", RAdeg: 78.634, DecDeg: -8.202, Mag: 0.13},
	{Name: "Procyon", Constellation: "Canis Minor", RAdeg: 114.826, DecDeg: 5.225, Mag: 0.34},
	{Name: "Achernar", Constellation: "Eridanus", RAdeg: 24.429, DecDeg: -57.237, Mag: 0.46},
	{Name: "Betelgeuse", Constellation: "Orion", RAdeg: 88.793, DecDeg: 7.407, Mag: 0.50},
	{Name: "Hadar", Constellation: "Centaurus", RAdeg: 210.956, DecDeg: -60.373, Mag: 0.61},
	{Name: "Altair", Constellation: "Aquila", RAdeg: 297.696, DecDeg: 8.868, Mag: 0.76},
	{Name: "Acrux", Constellation: "Crux", RAdeg: 186.650, DecDeg: -63.099, Mag: 0.76},
	{Name: "Aldebaran", Constellation: "Taurus", RAdeg: 68.980, DecDeg: 16.509, Mag: 0.85},
	{Name: "Antares", Constellation: "Scorpius", RAdeg: 247.352, DecDeg: -26.432, Mag: 0.96},
	{Name: "Spica", Constellation: "Virgo", RAdeg: 201.298, DecDeg: -11.161, Mag: 0.97},
	{Name: "Pollux", Constellation: "Gemini", RAdeg: 116.329, DecDeg: 28.026, Mag: 1.14},
	{Name: "Fomalhaut", Constellation: "Piscis Austrinus", RAdeg: 344.413, DecDeg: -29.622, Mag: 1.16},
	{Name: "Deneb", Constellation: "Cygnus", RAdeg: 310.358, DecDeg: 45.280, Mag: 1.25},
	{Name: "Regulus", Constellation: "Leo", RAdeg: 152.093, DecDeg: 11.967, Mag: 1.35},
	{Name: "Castor", Constellation: "Gemini", RAdeg: 113.650, DecDeg: 31.889, Mag: 1.58},
	{Name: "Polaris", Constellation: "Ursa Minor", RAdeg: 37.954, DecDeg: 89.264, Mag: 2.02},
}

// namedStarIndex maps lowercase names to database entries.
var namedStarIndex = func() map[string]Star {
	m := make(map[string]Star, len(namedStars))
	for _, s := range namedStars {
		m[strings.ToLower(s.Name)] = s
	}
	return m
}()

// LookupStar returns the named star (case-insensitive).
func LookupStar(name string) (Star, bool) {
	s, ok := namedStarIndex[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// NamedStars returns a copy of the star database.
func NamedStars() []Star {
	out := make([]Star, len(namedStars))
	copy(out, namedStars)
	return out
}

// Apparent returns the star's apparent RA/Dec of date in degrees.
func (s Star) Apparent(jde float64) (raDeg, decDeg float64) {
	ecl := EquatorialToEcliptic(RADecToVec(s.RAdeg, s.DecDeg))
	return apparentFromJ2000Ecliptic(EclipticLongitude(ecl), EclipticLatitude(ecl), jde)
}
