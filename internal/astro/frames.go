// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"math"

	"github.com/mooncaker816/learnmeeus/v3/base"
	"github.com/mooncaker816/learnmeeus/v3/coord"
	"github.com/mooncaker816/learnmeeus/v3/nutation"
	"github.com/soniakeys/unit"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// J2000 is the Julian Ephemeris Day of the standard epoch.
const J2000 = 2451545.0

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// EclipticLatitude returns the ecliptic latitude in degrees for a vector.
func EclipticLatitude(v Vec3) float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return radToDeg(math.Asin(v.Z / r))
}

// EclipticLongitude returns the ecliptic longitude in degrees for a vector.
func EclipticLongitude(v Vec3) float64 {
	lon := radToDeg(math.Atan2(v.Y, v.X))
	if lon < 0 {
		lon += 360
	}
	return lon
}

// Obliquity is the Earth's axial tilt (J2000 epoch) in radians.
const obliquityRad = 23.439291 * math.Pi / 180

// EquatorialToEcliptic converts J2000 equatorial XYZ to J2000 ecliptic XYZ.
// Input is in any units (km, AU, etc); output is in the same units.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	cosE := math.Cos(obliquityRad)
	sinE := math.Sin(obliquityRad)

	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// RADecToVec returns the unit vector for a J2000 RA/Dec in degrees.
func RADecToVec(raDeg, decDeg float64) Vec3 {
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)
	return Vec3{
		X: math.Cos(dec) * math.Cos(ra),
		Y: math.Cos(dec) * math.Sin(ra),
		Z: math.Sin(dec),
	}
}

// generalPrecession returns the accumulated general precession in
// longitude since J2000, in degrees (IAU 1976, 5029.0966" per century).
func generalPrecession(jde float64) float64 {
	T := base.J2000Century(jde)
	return (5029.0966*T + 1.11113*T*T - 0.000006*T*T*T) / 3600
}

// trueObliquity returns the obliquity of date including nutation, plus the
// nutation in longitude.
func trueObliquity(jde float64) (ε, Δψ unit.Angle) {
	Δψ, Δε := nutation.Nutation(jde)
	return nutation.MeanObliquity(jde) + Δε, Δψ
}

// apparentFromJ2000Ecliptic converts geocentric ecliptic coordinates referred
// to the J2000 equinox to apparent RA/Dec of date. The ecliptic is treated as
// fixed between the epochs; only the equinox moves.
func apparentFromJ2000Ecliptic(lonDeg, latDeg, jde float64) (raDeg, decDeg float64) {
	ε, Δψ := trueObliquity(jde)
	λ := unit.AngleFromDeg(lonDeg+generalPrecession(jde)) + Δψ
	α, δ := coord.EclToEq(λ, unit.AngleFromDeg(latDeg), ε.Sin(), ε.Cos())
	return normalizeAngle360(radToDeg(α.Rad())), radToDeg(δ.Rad())
}

// apparentFromEclipticOfDate converts geometric ecliptic coordinates referred
// to the mean equinox of date to apparent RA/Dec of date.
func apparentFromEclipticOfDate(λ, β unit.Angle, jde float64) (raDeg, decDeg float64) {
	ε, Δψ := trueObliquity(jde)
	α, δ := coord.EclToEq(λ+Δψ, β, ε.Sin(), ε.Cos())
	return normalizeAngle360(radToDeg(α.Rad())), radToDeg(δ.Rad())
}

// J2000EclipticLongitude converts an apparent RA/Dec of date back to the
// ecliptic longitude referred to the J2000 equinox, in degrees.
func J2000EclipticLongitude(raDeg, decDeg, jde float64) float64 {
	ε, Δψ := trueObliquity(jde)
	λ, _ := coord.EqToEcl(unit.RA(degToRad(normalizeAngle360(raDeg))), unit.AngleFromDeg(decDeg), ε.Sin(), ε.Cos())
	return normalizeAngle360(radToDeg((λ - Δψ).Rad()) - generalPrecession(jde))
}
