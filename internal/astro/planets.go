package astro

import (
	"math"

	"github.com/mooncaker816/learnmeeus/v3/base"
)

// Planet identifies a major planet with a Keplerian element set.
type Planet int

const (
	PlanetVenus Planet = iota
	PlanetEarth // Earth-Moon barycenter
	PlanetMars
	PlanetJupiter
	PlanetSaturn
)

// String returns the planet name.
func (p Planet) String() string {
	switch p {
	case PlanetVenus:
		return "Venus"
	case PlanetEarth:
		return "Earth"
	case PlanetMars:
		return "Mars"
	case PlanetJupiter:
		return "Jupiter"
	case PlanetSaturn:
		return "Saturn"
	default:
		return "unknown"
	}
}

// keplerElements holds J2000 mean elements and their rates per Julian century.
// Angles in degrees, semi-major axis in AU.
type keplerElements struct {
	a, e, i, L, peri, node       float64
	da, de, di, dL, dperi, dnode float64
}

// Mean elements referred to the J2000 ecliptic and equinox, from JPL's
// "Approximate Positions of the Planets" (Standish), valid 1800-2050.
var planetElements = map[Planet]keplerElements{
	PlanetVenus: {
		0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418,
	},
	PlanetEarth: {
		1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0,
	},
	PlanetMars: {
		1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343,
	},
	PlanetJupiter: {
		5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106,
	},
	PlanetSaturn: {
		9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794,
	},
}

// Validity window of the element set, as Julian Ephemeris Days.
const (
	ElementsValidFromJDE = 2378496.5 // 1800-01-01
	ElementsValidToJDE   = 2470172.5 // 2051-01-01
)

// ElementsValid reports whether jde lies inside the element validity window.
func ElementsValid(jde float64) bool {
	return jde >= ElementsValidFromJDE && jde < ElementsValidToJDE
}

// HeliocentricPosition returns the heliocentric position of a planet in AU,
// in the J2000 ecliptic frame.
func HeliocentricPosition(p Planet, jde float64) Vec3 {
	el, ok := planetElements[p]
	if !ok {
		return Vec3{}
	}
	T := base.J2000Century(jde)

	a := el.a + el.da*T
	e := el.e + el.de*T
	inc := degToRad(el.i + el.di*T)
	L := el.L + el.dL*T
	peri := el.peri + el.dperi*T
	node := el.node + el.dnode*T

	argPeri := degToRad(peri - node)
	meanAnomaly := degToRad(normalizeAngle180(L - peri))
	nodeRad := degToRad(node)

	E := solveKepler(meanAnomaly, e)

	// Position in the orbital plane
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	cn, sn := math.Cos(nodeRad), math.Sin(nodeRad)
	ci, si := math.Cos(inc), math.Sin(inc)

	return Vec3{
		X: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		Y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		Z: (sw*si)*xp + (cw*si)*yp,
	}
}

// solveKepler solves Kepler's equation E - e·sin(E) = M for E (radians)
// by Newton iteration.
func solveKepler(M, e float64) float64 {
	E := M
	if e > 0.8 {
		E = math.Pi
	}
	for i := 0; i < 30; i++ {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return E
}

// PlanetPosition is the apparent geocentric place of a planet.
type PlanetPosition struct {
	RAdeg  float64 // apparent, equinox of date
	DecDeg float64

	EclLonJ2000 float64 // geocentric ecliptic longitude, J2000 equinox
	EclLatDeg   float64 // geocentric ecliptic latitude

	DistanceAU    float64 // Earth-planet distance (Δ)
	SunDistanceAU float64 // Sun-planet distance (r)
	EarthSunAU    float64 // Sun-Earth distance (R)
	PhaseAngleDeg float64
	Magnitude     float64
}

// PlanetApparent computes the apparent geocentric place and visual magnitude
// of a planet. Light-time and aberration are neglected (< 20").
func PlanetApparent(p Planet, jde float64) PlanetPosition {
	helio := HeliocentricPosition(p, jde)
	earth := HeliocentricPosition(PlanetEarth, jde)
	geo := helio.Sub(earth)

	r := helio.Norm()
	delta := geo.Norm()
	R := earth.Norm()

	lon := EclipticLongitude(geo)
	lat := EclipticLatitude(geo)
	ra, dec := apparentFromJ2000Ecliptic(lon, lat, jde)

	i := phaseAngle(r, delta, R)

	pos := PlanetPosition{
		RAdeg:         ra,
		DecDeg:        dec,
		EclLonJ2000:   lon,
		EclLatDeg:     lat,
		DistanceAU:    delta,
		SunDistanceAU: r,
		EarthSunAU:    R,
		PhaseAngleDeg: i,
	}

	if p == PlanetSaturn {
		prec := generalPrecession(jde)
		B, dU := saturnRingGeometry(
			EclipticLongitude(helio)+prec, EclipticLatitude(helio),
			lon+prec, lat, jde)
		pos.Magnitude = saturnMagnitude(r, delta, B, dU)
	} else {
		pos.Magnitude = planetMagnitude(p, r, delta, i)
	}

	return pos
}

// phaseAngle returns the Sun-planet-Earth angle in degrees.
func phaseAngle(r, delta, R float64) float64 {
	cosI := (r*r + delta*delta - R*R) / (2 * r * delta)
	return radToDeg(math.Acos(clamp(cosI, -1, 1)))
}

// normalizeAngle180 normalizes an angle to -180..180 degrees.
func normalizeAngle180(a float64) float64 {
	a = normalizeAngle360(a)
	if a > 180 {
		a -= 360
	}
	return a
}
