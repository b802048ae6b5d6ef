package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-skyscope/internal/astro"
	"github.com/litescript/ls-skyscope/internal/sky"
)

func sampleObservation() sky.Observation {
	phase := 99.2
	return sky.Observation{
		Observer:    astro.Observer{Name: "London", LatDeg: 51.5074, LonDeg: -0.1278},
		Time:        time.Date(2024, 1, 25, 22, 0, 0, 0, time.UTC),
		SunAltitude: -52.3,
		Twilight:    astro.TwilightNight,
		Dark:        true,
		Objects: []sky.VisibleObject{
			{Name: "Moon", Type: sky.TypeMoon, Constellation: "Cancer", Altitude: 48.2, Azimuth: 160.4, Magnitude: -12.6, Phase: &phase},
			{Name: "Sirius", Type: sky.TypeStar, Constellation: "Canis Major", Altitude: 12.1, Azimuth: 190, Magnitude: -1.46},
		},
	}
}

func TestNewSnapshot(t *testing.T) {
	obs := sampleObservation()
	gen := time.Date(2024, 1, 25, 22, 0, 1, 0, time.FixedZone("CET", 3600))
	snap := NewSnapshot(obs, gen)

	if !snap.GeneratedAt.Equal(gen) || snap.GeneratedAt.Location() != time.UTC {
		t.Errorf("GeneratedAt = %v, want %v in UTC", snap.GeneratedAt, gen)
	}
	if snap.Twilight != "night" || !snap.Dark {
		t.Errorf("Twilight/Dark = %q/%v", snap.Twilight, snap.Dark)
	}
	if snap.Observer.Name != "London" || snap.Observer.LatDeg != 51.5074 {
		t.Errorf("Observer = %+v", snap.Observer)
	}
	if len(snap.Objects) != 2 {
		t.Fatalf("Objects count = %d, want 2", len(snap.Objects))
	}
}

func TestNewSnapshot_NilObjects(t *testing.T) {
	snap := NewSnapshot(sky.Observation{Twilight: astro.TwilightDay}, time.Now())

	var buf bytes.Buffer
	if err := snap.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"objects": []`) {
		t.Errorf("empty objects should encode as [], got:\n%s", buf.String())
	}
}

func TestSnapshot_WriteJSON(t *testing.T) {
	snap := NewSnapshot(sampleObservation(), time.Date(2024, 1, 25, 22, 0, 1, 0, time.UTC))
	snap.Engine = "Local"

	var buf bytes.Buffer
	if err := snap.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"generated_at", "time", "engine", "observer", "sun_altitude", "twilight", "dark", "objects"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}

	objects := decoded["objects"].([]any)
	moon := objects[0].(map[string]any)
	if moon["phase"] != 99.2 {
		t.Errorf("moon phase = %v, want 99.2", moon["phase"])
	}
	star := objects[1].(map[string]any)
	if _, ok := star["phase"]; ok {
		t.Error("stars must not carry a phase")
	}

	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON should be indented")
	}
}

func TestWriteTable_Plain(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleObservation(), false)
	out := buf.String()

	for _, want := range []string{"London (51.5074, -0.1278)", "Sun -52.3° (night)", "Moon", "Canis Major", "99.2%", "Total: 2 visible"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain table should not contain escape codes")
	}

	// Sirius has no phase column value.
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Sirius") && !strings.HasSuffix(line, "-") {
			t.Errorf("star row should end with '-': %q", line)
		}
	}
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sky.Observation{Twilight: astro.TwilightDay, SunAltitude: 40}, false)
	if !strings.Contains(buf.String(), "Nothing above the horizon") {
		t.Errorf("empty table output:\n%s", buf.String())
	}
}

func TestTierColor(t *testing.T) {
	tests := []struct {
		elev float64
		want string
	}{
		{-5, ColorNone},
		{5, ColorLow},
		{30, ColorMedium},
		{70, ColorHigh},
	}
	for _, tc := range tests {
		if got := TierColor(astro.GetElevationTier(tc.elev)); got != tc.want {
			t.Errorf("TierColor(tier(%v)) = %q, want %q", tc.elev, got, tc.want)
		}
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Vega", 11, "Vega"},
		{"Sagittarius", 8, "Sagitt.."},
		{"Boötes", 3, "Boö"},
	}
	for _, tc := range tests {
		if got := truncateStr(tc.in, tc.max); got != tc.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
