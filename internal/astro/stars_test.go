package astro

import (
	"math"
	"testing"
)

func TestNamedStars_KnownStars(t *testing.T) {
	knownStars := map[string]struct {
		minRA, maxRA   float64
		minDec, maxDec float64
		maxMag         float64
		constellation  string
	}{
		"Sirius":     {100, 103, -18, -15, 0, "Canis Major"},
		"Vega":       {278, 281, 37, 40, 0.5, "Lyra"},
		"Arcturus":   {212, 215, 18, 21, 0.5, "Boötes"},
		"Rigel":      {77, 80, -9, -7, 0.5, "Orion"},
		"Betelgeuse": {87, 90, 6, 9, 1.0, "Orion"},
		"Polaris":    {35, 40, 88, 90, 2.5, "Ursa Minor"},
	}

	for name, expected := range knownStars {
		star, found := LookupStar(name)
		if !found {
			t.Errorf("Expected star %s in database", name)
			continue
		}

		if star.RAdeg < expected.minRA || star.RAdeg > expected.maxRA {
			t.Errorf("%s RA=%v, expected %v-%v", name, star.RAdeg, expected.minRA, expected.maxRA)
		}
		if star.DecDeg < expected.minDec || star.DecDeg > expected.maxDec {
			t.Errorf("%s Dec=%v, expected %v-%v", name, star.DecDeg, expected.minDec, expected.maxDec)
		}
		if star.Mag > expected.maxMag {
			t.Errorf("%s Mag=%v, expected < %v", name, star.Mag, expected.maxMag)
		}
		if star.Constellation != expected.constellation {
			t.Errorf("%s constellation = %q, want %q", name, star.Constellation, expected.constellation)
		}
	}
}

func TestLookupStar_Normalizes(t *testing.T) {
	for _, name := range []string{"sirius", "SIRIUS", "  Sirius ", "SiRiUs"} {
		s, ok := LookupStar(name)
		if !ok || s.Name != "Sirius" {
			t.Errorf("LookupStar(%q) = %v, %v; want Sirius", name, s.Name, ok)
		}
	}

	if _, ok := LookupStar("Vulcan"); ok {
		t.Error("LookupStar(Vulcan) should not be found")
	}
	if _, ok := LookupStar(""); ok {
		t.Error("LookupStar(\"\") should not be found")
	}
}

func TestNamedStars_ValidCoordinates(t *testing.T) {
	for _, star := range NamedStars() {
		if star.RAdeg < 0 || star.RAdeg >= 360 {
			t.Errorf("Star %s has invalid RA: %v", star.Name, star.RAdeg)
		}
		if star.DecDeg < -90 || star.DecDeg > 90 {
			t.Errorf("Star %s has invalid Dec: %v", star.Name, star.DecDeg)
		}
		if star.Mag < -2 || star.Mag > 5 {
			t.Errorf("Star %s has unusual magnitude: %v", star.Name, star.Mag)
		}
		if star.Name == "" || star.Constellation == "" {
			t.Errorf("Star entry missing name or constellation: %+v", star)
		}
	}
}

func TestNamedStars_NoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, star := range NamedStars() {
		if seen[star.Name] {
			t.Errorf("Duplicate star name: %s", star.Name)
		}
		seen[star.Name] = true
	}
}

func TestNamedStars_BrightestFirst(t *testing.T) {
	stars := NamedStars()
	if len(stars) == 0 || stars[0].Name != "Sirius" {
		t.Fatalf("first star should be Sirius")
	}
	for i := 1; i < len(stars); i++ {
		if stars[i].Mag < stars[i-1].Mag {
			t.Errorf("%s (%.2f) listed after fainter %s (%.2f)",
				stars[i].Name, stars[i].Mag, stars[i-1].Name, stars[i-1].Mag)
		}
	}
}

func TestNamedStars_ReturnsCopy(t *testing.T) {
	stars := NamedStars()
	stars[0].Name = "Mutated"

	if s, _ := LookupStar("Sirius"); s.Name != "Sirius" {
		t.Error("mutating NamedStars() result changed the database")
	}
	if NamedStars()[0].Name != "Sirius" {
		t.Error("NamedStars() did not return a copy")
	}
}

func TestStarApparent(t *testing.T) {
	sirius, _ := LookupStar("Sirius")

	// At the J2000 epoch only nutation separates apparent from catalog.
	ra, dec := sirius.Apparent(J2000)
	if math.Abs(ra-sirius.RAdeg) > 0.02 || math.Abs(dec-sirius.DecDeg) > 0.02 {
		t.Errorf("Apparent at J2000 = (%.4f, %.4f), want ~(%.4f, %.4f)",
			ra, dec, sirius.RAdeg, sirius.DecDeg)
	}

	// Precession moves Sirius east by roughly 0.2° in RA over 25 years.
	ra2025, dec2025 := sirius.Apparent(J2000 + 25*365.25)
	dRA := ra2025 - sirius.RAdeg
	if dRA < 0.1 || dRA > 0.35 {
		t.Errorf("RA drift over 25y = %.3f°, want 0.1-0.35°", dRA)
	}
	if math.Abs(dec2025-sirius.DecDeg) > 0.1 {
		t.Errorf("Dec drift over 25y = %.3f°, want < 0.1°", dec2025-sirius.DecDeg)
	}
}
