package astro

import (
	"math"

	"github.com/mooncaker816/learnmeeus/v3/base"
	"github.com/mooncaker816/learnmeeus/v3/moonillum"
	"github.com/mooncaker816/learnmeeus/v3/moonposition"
)

// EarthRadiusKm is the equatorial radius of the Earth.
const EarthRadiusKm = 6378.14

// MoonPosition is the apparent geocentric place of the Moon.
type MoonPosition struct {
	RAdeg         float64 // apparent, equinox of date
	DecDeg        float64
	DistanceKm    float64
	PhaseAngleDeg float64
	Illuminated   float64 // illuminated fraction of the disk, 0-1
	Magnitude     float64
}

// MoonApparent computes the Moon's apparent geocentric place, phase and
// magnitude using the ELP-derived series of Meeus ch. 47-48.
func MoonApparent(jde float64) MoonPosition {
	λ, β, Δ := moonposition.Position(jde)
	ra, dec := apparentFromEclipticOfDate(λ, β, jde)

	i := moonillum.PhaseAngle3(jde)
	iDeg := radToDeg(i.Rad())

	return MoonPosition{
		RAdeg:         ra,
		DecDeg:        dec,
		DistanceKm:    Δ,
		PhaseAngleDeg: iDeg,
		Illuminated:   base.Illuminated(i),
		Magnitude:     moonMagnitude(iDeg),
	}
}

// TopocentricElevation corrects a geocentric elevation (degrees) for the
// horizontal parallax of a body at distKm. Only the Moon needs this.
func TopocentricElevation(elDeg, distKm float64) float64 {
	if distKm <= EarthRadiusKm {
		return elDeg
	}
	parallax := math.Asin(EarthRadiusKm / distKm)
	return radToDeg(degToRad(elDeg) - parallax*math.Cos(degToRad(elDeg)))
}
