package astro

import (
	"math"

	"github.com/mooncaker816/learnmeeus/v3/base"
)

// planetMagnitude returns the visual magnitude of a planet from the
// Astronomical Almanac 1984 expressions (Meeus ch. 41).
// r, delta in AU; i is the phase angle in degrees.
func planetMagnitude(p Planet, r, delta, i float64) float64 {
	d := 5 * math.Log10(r*delta)
	switch p {
	case PlanetVenus:
		return -4.40 + d + 0.0009*i + 0.000239*i*i - 0.00000065*i*i*i
	case PlanetMars:
		return -1.52 + d + 0.016*i
	case PlanetJupiter:
		return -9.40 + d + 0.005*i
	default:
		return math.NaN()
	}
}

// saturnMagnitude includes the ring contribution: B is the tilt of the ring
// plane towards Earth, dU the Sun-Earth difference in Saturnicentric
// longitude, both in degrees.
func saturnMagnitude(r, delta, B, dU float64) float64 {
	sinB := math.Sin(degToRad(math.Abs(B)))
	return -8.88 + 5*math.Log10(r*delta) + 0.044*math.Abs(dU) - 2.60*sinB + 1.25*sinB*sinB
}

// saturnRingGeometry returns the ring tilt B and ΔU in degrees (Meeus ch. 45).
// l, b: heliocentric ecliptic coordinates; lon, lat: geocentric ones,
// all referred to the equinox of date.
func saturnRingGeometry(l, b, lon, lat, jde float64) (B, dU float64) {
	T := base.J2000Century(jde)
	inc := degToRad(28.075216 - 0.012998*T + 0.000004*T*T)
	node := 169.508470 + 1.394681*T + 0.000412*T*T

	ringLongitude := func(lonDeg, latDeg float64) float64 {
		x := degToRad(lonDeg - node)
		beta := degToRad(latDeg)
		return math.Atan2(
			math.Sin(inc)*math.Sin(beta)+math.Cos(inc)*math.Cos(beta)*math.Sin(x),
			math.Cos(beta)*math.Cos(x),
		)
	}

	x := degToRad(lon - node)
	beta := degToRad(lat)
	sinB := math.Sin(inc)*math.Cos(beta)*math.Sin(x) - math.Cos(inc)*math.Sin(beta)
	B = radToDeg(math.Asin(clamp(sinB, -1, 1)))

	dU = math.Abs(normalizeAngle180(radToDeg(ringLongitude(l, b) - ringLongitude(lon, lat))))
	return B, dU
}

// moonMagnitude returns the Moon's visual magnitude for a phase angle in degrees
// (Allen's expression; the distance term is negligible).
func moonMagnitude(i float64) float64 {
	i = math.Abs(i)
	return -12.73 + 0.026*i + 4e-9*i*i*i*i
}
