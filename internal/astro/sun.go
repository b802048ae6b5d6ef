// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"time"

	"github.com/mooncaker816/learnmeeus/v3/solar"
)

// CivilTwilightDeg is the Sun altitude below which the sky counts as dark
// enough for the naked-eye star list.
const CivilTwilightDeg = -6.0

// SunPosition returns the apparent equatorial coordinates of the Sun in degrees.
// Uses the VSOP87-truncated solar theory of Meeus ch. 25 (accuracy ~0.01°).
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	return sunEquatorial(EphemerisDay(t))
}

func sunEquatorial(jde float64) (raDeg, decDeg float64) {
	α, δ := solar.ApparentEquatorial(jde)
	return normalizeAngle360(radToDeg(α.Rad())), radToDeg(δ.Rad())
}

// IsDark reports whether the Sun is below civil twilight.
func IsDark(sunAltDeg float64) bool {
	return sunAltDeg < CivilTwilightDeg
}

// Twilight classifies the sky brightness by Sun altitude.
type Twilight int

const (
	TwilightDay          Twilight = iota // Sun at or above the horizon
	TwilightCivil                        // 0° to -6°
	TwilightNautical                     // -6° to -12°
	TwilightAstronomical                 // -12° to -18°
	TwilightNight                        // below -18°
)

// String returns the twilight name.
func (t Twilight) String() string {
	switch t {
	case TwilightDay:
		return "day"
	case TwilightCivil:
		return "civil twilight"
	case TwilightNautical:
		return "nautical twilight"
	case TwilightAstronomical:
		return "astronomical twilight"
	case TwilightNight:
		return "night"
	default:
		return "unknown"
	}
}

// ClassifyTwilight returns the twilight phase for a Sun altitude in degrees.
// Each boundary belongs to the brighter phase, so -6° exactly is still civil.
func ClassifyTwilight(sunAltDeg float64) Twilight {
	switch {
	case sunAltDeg >= 0:
		return TwilightDay
	case sunAltDeg >= CivilTwilightDeg:
		return TwilightCivil
	case sunAltDeg >= -12:
		return TwilightNautical
	case sunAltDeg >= -18:
		return TwilightAstronomical
	default:
		return TwilightNight
	}
}
