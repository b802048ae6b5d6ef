package astro

// MinElevation is the threshold for considering an object "visible".
// The horizon test is geometric: no allowance is made for refraction.
const MinElevation = 0.0

// AboveHorizon reports whether an elevation in degrees is strictly above
// the horizon.
func AboveHorizon(elDeg float64) bool {
	return elDeg > MinElevation
}

// ElevationTier categorizes elevation for UI display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for a given elevation.
func GetElevationTier(elDeg float64) ElevationTier {
	switch {
	case elDeg <= 0:
		return ElevationNone
	case elDeg < 15:
		return ElevationLow
	case elDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
