package astro

import "sort"

// eclipticBand is the stretch of the J2000 ecliptic inside one IAU
// constellation, starting at StartDeg and running to the next band.
type eclipticBand struct {
	StartDeg float64
	Name     string
}

// Longitudes where the J2000 ecliptic crosses the IAU constellation
// boundaries. Pisces wraps through 0°.
var eclipticBands = []eclipticBand{
	{0, "Pisces"},
	{29.09, "Aries"},
	{53.47, "Taurus"},
	{90.43, "Gemini"},
	{118.26, "Cancer"},
	{138.18, "Leo"},
	{174.17, "Virgo"},
	{218.10, "Libra"},
	{241.14, "Scorpius"},
	{247.70, "Ophiuchus"},
	{266.30, "Sagittarius"},
	{299.71, "Capricornus"},
	{327.88, "Aquarius"},
	{351.57, "Pisces"},
}

// ConstellationAtEclipticLongitude returns the constellation containing the
// point of the J2000 ecliptic at lonDeg.
func ConstellationAtEclipticLongitude(lonDeg float64) string {
	lon := normalizeAngle360(lonDeg)
	idx := sort.Search(len(eclipticBands), func(i int) bool {
		return eclipticBands[i].StartDeg > lon
	})
	return eclipticBands[idx-1].Name
}

// ConstellationOf returns the zodiacal constellation whose ecliptic band
// contains the position's J2000 ecliptic longitude. It is an approximation
// of the IAU boundaries: ecliptic latitude is not consulted, so a body well
// off the ecliptic (the Moon near a node extreme, Venus near inferior
// conjunction) is reported in the band it projects onto even when it really
// lies in a neighbour such as Cetus, Orion or Sextans.
func ConstellationOf(raDeg, decDeg, jde float64) string {
	return ConstellationAtEclipticLongitude(J2000EclipticLongitude(raDeg, decDeg, jde))
}
