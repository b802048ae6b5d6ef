package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
		tol      float64
	}{
		{
			name:     "J2000 epoch",
			time:     time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
			tol:      0.0001,
		},
		{
			name:     "Unix epoch",
			time:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2440587.5,
			tol:      0.0001,
		},
		{
			name:     "Known date 2024-01-01 00:00 UTC",
			time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2460310.5,
			tol:      0.0001,
		},
		{
			name:     "Non-UTC location is converted",
			time:     time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600)),
			expected: 2460310.5,
			tol:      0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.time)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("JulianDay() = %v, want %v (±%v)", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestEphemerisDay_DeltaT(t *testing.T) {
	tm := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	offsetSec := (EphemerisDay(tm) - JulianDay(tm)) * 86400

	// TT-UT was about 69 s in 2024; the polynomial runs a few seconds high.
	if offsetSec < 60 || offsetSec > 80 {
		t.Errorf("EphemerisDay offset = %.1fs, want 60-80s", offsetSec)
	}
}

func TestDeltaT_Continuity(t *testing.T) {
	// Adjacent polynomial segments should meet within a few seconds.
	boundaries := []int{1961, 1986, 2005}
	for _, y := range boundaries {
		before := deltaT(time.Date(y-1, 12, 31, 0, 0, 0, 0, time.UTC))
		after := deltaT(time.Date(y, 1, 1, 12, 0, 0, 0, time.UTC))
		if math.Abs(after-before) > 3 {
			t.Errorf("deltaT jump at %d: %.2f -> %.2f", y, before, after)
		}
	}
}

func TestLocalSiderealTime(t *testing.T) {
	// At J2000 epoch, GMST is 280.46°; apparent time differs by < 0.01°.
	t2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	lst0 := localSiderealTime(t2000, 0)
	if math.Abs(lst0-280.46) > 0.1 {
		t.Errorf("LST at J2000, lon=0 = %v, want ~280.46", lst0)
	}

	// At longitude +90° (east), LST should be GAST + 90°
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	gast := localSiderealTime(testTime, 0)
	lst90 := localSiderealTime(testTime, 90)
	expected90 := math.Mod(gast+90, 360)
	if math.Abs(lst90-expected90) > 0.001 {
		t.Errorf("LST at lon=90 = %v, want %v", lst90, expected90)
	}

	// LST should always be in 0-360 range
	for lon := -180.0; lon <= 180; lon += 30 {
		lst := localSiderealTime(testTime, lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST at lon=%v out of range: %v", lon, lst)
		}
	}
}

func TestEquatorialToHorizontal_Polaris(t *testing.T) {
	// Polaris sits within a degree of the pole: El ≈ latitude, Az ≈ north.
	polaris := SkyCoord{
		RAdeg:  37.95,
		DecDeg: 89.26,
	}

	observer := Observer{
		LatDeg: 35.0,
		LonDeg: -117.0,
	}

	testTime := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	result := EquatorialToHorizontal(polaris, observer, testTime)

	if math.Abs(result.ElDeg-observer.LatDeg) > 1.5 {
		t.Errorf("Polaris elevation = %v°, expected ~%v° (latitude)", result.ElDeg, observer.LatDeg)
	}

	azFromNorth := math.Min(result.AzDeg, 360-result.AzDeg)
	if azFromNorth > 1.5 {
		t.Errorf("Polaris azimuth = %v°, expected within 1.5° of north", result.AzDeg)
	}

	if result.RAdeg != polaris.RAdeg || result.DecDeg != polaris.DecDeg {
		t.Error("RA/Dec should be preserved after transformation")
	}
}

func TestEquatorialToHorizontal_Meridian(t *testing.T) {
	observer := Observer{LatDeg: 35.0, LonDeg: -117.0}
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	lst := localSiderealTime(testTime, observer.LonDeg)

	tests := []struct {
		name   string
		decDeg float64
		wantEl float64
		wantAz float64
	}{
		{"zenith", 35, 90, -1},
		{"south of zenith", 0, 55, 180},
		{"north of zenith", 60, 65, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EquatorialToHorizontal(SkyCoord{RAdeg: lst, DecDeg: tt.decDeg}, observer, testTime)

			if math.Abs(result.ElDeg-tt.wantEl) > 1e-6 {
				t.Errorf("El = %v°, want %v°", result.ElDeg, tt.wantEl)
			}
			if tt.wantAz < 0 {
				return // azimuth undefined at the zenith
			}
			diff := math.Abs(result.AzDeg - tt.wantAz)
			diff = math.Min(diff, 360-diff)
			if diff > 1e-6 {
				t.Errorf("Az = %v°, want %v°", result.AzDeg, tt.wantAz)
			}
		})
	}
}

func TestEquatorialToHorizontal_RisingInEast(t *testing.T) {
	// From the equator, a star on the celestial equator six hours east of
	// the meridian sits on the eastern horizon.
	observer := Observer{LatDeg: 0, LonDeg: 0}
	testTime := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	lst := localSiderealTime(testTime, 0)

	result := EquatorialToHorizontal(SkyCoord{RAdeg: lst + 90, DecDeg: 0}, observer, testTime)

	if math.Abs(result.ElDeg) > 1e-6 {
		t.Errorf("El = %v°, want 0°", result.ElDeg)
	}
	if math.Abs(result.AzDeg-90) > 1e-6 {
		t.Errorf("Az = %v°, want 90° (east)", result.AzDeg)
	}
}

func TestEquatorialToHorizontal_SouthernStar(t *testing.T) {
	// Max elevation = 90 - lat + dec = 90 - 35 + (-60) = -5°
	southernStar := SkyCoord{
		RAdeg:  0,
		DecDeg: -60,
	}

	observer := Observer{
		LatDeg: 35.0,
		LonDeg: -117.0,
	}

	for hour := 0; hour < 24; hour += 3 {
		testTime := time.Date(2024, 6, 15, hour, 0, 0, 0, time.UTC)
		result := EquatorialToHorizontal(southernStar, observer, testTime)

		if result.ElDeg > -5+1e-9 {
			t.Errorf("Star at Dec=-60° reaches El=%v° from 35°N at hour %d", result.ElDeg, hour)
		}
	}
}

func TestEquatorialToHorizontal_Poles(t *testing.T) {
	// At the pole, elevation equals declination regardless of time.
	observer := Observer{LatDeg: 90, LonDeg: 0}
	for hour := 0; hour < 24; hour += 4 {
		testTime := time.Date(2024, 12, 1, hour, 0, 0, 0, time.UTC)
		result := EquatorialToHorizontal(SkyCoord{RAdeg: 120, DecDeg: 30}, observer, testTime)

		if math.IsNaN(result.AzDeg) || math.IsNaN(result.ElDeg) {
			t.Fatalf("NaN at the pole: %+v", result)
		}
		if math.Abs(result.ElDeg-30) > 1e-6 {
			t.Errorf("El at pole = %v°, want 30°", result.ElDeg)
		}
	}
}

func TestEquatorialToHorizontal_PreservesRange(t *testing.T) {
	moon := SkyCoord{
		RAdeg:   100,
		DecDeg:  20,
		RangeKm: 384400,
	}

	observer := Observer{LatDeg: 35, LonDeg: -117}
	result := EquatorialToHorizontal(moon, observer, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	if result.RangeKm != moon.RangeKm {
		t.Errorf("RangeKm not preserved: got %v, want %v", result.RangeKm, moon.RangeKm)
	}
}

func TestEquatorialToHorizontal_AzimuthRange(t *testing.T) {
	observer := Observer{LatDeg: 35, LonDeg: -117}
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for ra := 0.0; ra < 360; ra += 30 {
		for dec := -80.0; dec <= 80; dec += 20 {
			star := SkyCoord{RAdeg: ra, DecDeg: dec}
			result := EquatorialToHorizontal(star, observer, testTime)

			if result.AzDeg < 0 || result.AzDeg >= 360 {
				t.Errorf("Azimuth out of range for RA=%v, Dec=%v: Az=%v",
					ra, dec, result.AzDeg)
			}
			if result.ElDeg < -90 || result.ElDeg > 90 {
				t.Errorf("Elevation out of range for RA=%v, Dec=%v: El=%v",
					ra, dec, result.ElDeg)
			}
		}
	}
}

func TestDegToRad(t *testing.T) {
	tests := []struct {
		deg float64
		rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-90, -math.Pi / 2},
	}

	for _, tt := range tests {
		got := degToRad(tt.deg)
		if math.Abs(got-tt.rad) > 1e-10 {
			t.Errorf("degToRad(%v) = %v, want %v", tt.deg, got, tt.rad)
		}
		back := radToDeg(got)
		if math.Abs(back-tt.deg) > 1e-10 {
			t.Errorf("radToDeg(degToRad(%v)) = %v", tt.deg, back)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want360, want180 float64
	}{
		{0, 0, 0},
		{370, 10, 10},
		{-10, 350, -10},
		{190, 190, -170},
		{720, 0, 0},
	}

	for _, tt := range tests {
		if got := normalizeAngle360(tt.in); math.Abs(got-tt.want360) > 1e-9 {
			t.Errorf("normalizeAngle360(%v) = %v, want %v", tt.in, got, tt.want360)
		}
		if got := normalizeAngle180(tt.in); math.Abs(got-tt.want180) > 1e-9 {
			t.Errorf("normalizeAngle180(%v) = %v, want %v", tt.in, got, tt.want180)
		}
	}
}
