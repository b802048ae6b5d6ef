package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyscope/internal/astro"
	"github.com/litescript/ls-skyscope/internal/export"
	"github.com/litescript/ls-skyscope/internal/site"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1)
)

// renderSiteList renders the site picker. The cursor row is highlighted and
// the queried site is marked.
func renderSiteList(sites []site.Site, cursor int, selected string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Sites"))
	b.WriteString("\n")

	for i, s := range sites {
		marker := "  "
		if s.Name == selected {
			marker = "● "
		}
		line := fmt.Sprintf("%s%-12s", marker, s.Name)
		if i == cursor {
			b.WriteString(selectedRowStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderResults() string {
	if m.obs == nil {
		if m.loading {
			return panelStyle.Render(dimStyle.Render("Computing..."))
		}
		return panelStyle.Render(dimStyle.Render("Select a site and press enter"))
	}

	obs := *m.obs
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · %s UTC", obs.Observer.Name, obs.Time.Format("2006-01-02 15:04"))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Sun %.1f° · %s", obs.SunAltitude, obs.Twilight)))
	b.WriteString("\n\n")

	if len(obs.Objects) == 0 {
		b.WriteString(dimStyle.Render("Nothing above the horizon"))
		return panelStyle.Render(b.String())
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("%-11s %-16s %4s %7s %6s %6s", "Name", "Constellation", "", "Alt", "Az", "Mag")))
	for _, o := range obs.Objects {
		tier := astro.GetElevationTier(o.Altitude)
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(export.TierColor(tier))).Render(tierToBar(tier))
		line := fmt.Sprintf("%-11s %-16s %s %6.1f° %5.1f° %6.2f", o.Name, o.Constellation, bar, o.Altitude, o.Azimuth, o.Magnitude)
		if o.Phase != nil {
			line += fmt.Sprintf("  %3.0f%% lit", *o.Phase)
		}
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(line))
	}
	return panelStyle.Render(b.String())
}

// tierToBar converts elevation tier to a 4-character bar representation.
func tierToBar(tier astro.ElevationTier) string {
	switch tier {
	case astro.ElevationHigh:
		return "████"
	case astro.ElevationMedium:
		return "██░░"
	case astro.ElevationLow:
		return "█░░░"
	default:
		return "░░░░"
	}
}
