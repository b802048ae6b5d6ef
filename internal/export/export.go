// Package export renders observations as JSON snapshots and text tables.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyscope/internal/astro"
	"github.com/litescript/ls-skyscope/internal/sky"
)

// Snapshot is the JSON-serializable representation of an observation.
type Snapshot struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Time        time.Time           `json:"time"`
	Engine      string              `json:"engine,omitempty"`
	Observer    ObserverExport      `json:"observer"`
	SunAltitude float64             `json:"sun_altitude"`
	Twilight    string              `json:"twilight"`
	Dark        bool                `json:"dark"`
	Objects     []sky.VisibleObject `json:"objects"`
}

// ObserverExport is a JSON-friendly observer.
type ObserverExport struct {
	Name   string  `json:"name,omitempty"`
	LatDeg float64 `json:"lat"`
	LonDeg float64 `json:"lon"`
}

// NewSnapshot converts an observation to an exportable format.
func NewSnapshot(obs sky.Observation, generatedAt time.Time) *Snapshot {
	objects := obs.Objects
	if objects == nil {
		objects = []sky.VisibleObject{}
	}
	return &Snapshot{
		GeneratedAt: generatedAt.UTC(),
		Time:        obs.Time,
		Observer: ObserverExport{
			Name:   obs.Observer.Name,
			LatDeg: obs.Observer.LatDeg,
			LonDeg: obs.Observer.LonDeg,
		},
		SunAltitude: obs.SunAltitude,
		Twilight:    obs.Twilight.String(),
		Dark:        obs.Dark,
		Objects:     objects,
	}
}

// WriteJSON writes the snapshot as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Elevation tier colours, shared with the terminal UI.
const (
	ColorHigh   = "46"  // green
	ColorMedium = "226" // yellow
	ColorLow    = "208" // orange
	ColorNone   = "240" // dim
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorNone))
)

// TierColor returns the colour for an elevation tier.
func TierColor(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return ColorHigh
	case astro.ElevationMedium:
		return ColorMedium
	case astro.ElevationLow:
		return ColorLow
	default:
		return ColorNone
	}
}

const tableWidth = 72

// WriteTable writes a text table of the observation. When styled is set the
// title and header are highlighted and altitudes are coloured by tier.
func WriteTable(w io.Writer, obs sky.Observation, styled bool) {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	where := fmt.Sprintf("%.4f, %.4f", obs.Observer.LatDeg, obs.Observer.LonDeg)
	if obs.Observer.Name != "" {
		where = obs.Observer.Name + " (" + where + ")"
	}
	fmt.Fprintln(w, style(titleStyle, fmt.Sprintf("Sky @ %s from %s", obs.Time.Format(time.RFC3339), where)))
	fmt.Fprintf(w, "Sun %.1f° (%s)\n", obs.SunAltitude, obs.Twilight)
	fmt.Fprintln(w, strings.Repeat("─", tableWidth))

	if len(obs.Objects) == 0 {
		fmt.Fprintln(w, style(dimStyle, "Nothing above the horizon"))
		return
	}

	fmt.Fprintln(w, style(headerStyle, fmt.Sprintf("%-11s %-7s %-16s %7s %7s %6s %6s",
		"Name", "Type", "Constellation", "Alt", "Az", "Mag", "Phase")))
	fmt.Fprintln(w, strings.Repeat("─", tableWidth))

	for _, o := range obs.Objects {
		alt := fmt.Sprintf("%6.1f°", o.Altitude)
		if styled {
			color := TierColor(astro.GetElevationTier(o.Altitude))
			alt = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(alt)
		}
		phase := "     -"
		if o.Phase != nil {
			phase = fmt.Sprintf("%5.1f%%", *o.Phase)
		}
		fmt.Fprintf(w, "%-11s %-7s %-16s %s %6.1f° %6.2f %s\n",
			truncateStr(o.Name, 11),
			o.Type,
			truncateStr(o.Constellation, 16),
			alt,
			o.Azimuth,
			o.Magnitude,
			phase,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d visible\n", len(obs.Objects))
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
