// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyscope/internal/site"
	"github.com/litescript/ls-skyscope/internal/sky"
	"github.com/litescript/ls-skyscope/internal/version"
)

const (
	// QueryTimeout bounds one sky query issued from the UI.
	QueryTimeout = 45 * time.Second

	// RefreshInterval is how often the selected site is re-queried.
	RefreshInterval = time.Minute
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a periodic re-query of the selected site.
	TickMsg time.Time

	// AnimTickMsg drives the loading spinner.
	AnimTickMsg time.Time

	// ObservationMsg carries a completed query.
	ObservationMsg struct {
		Site        string
		Observation sky.Observation
		Duration    time.Duration
	}

	// ErrorMsg signals a failed query.
	ErrorMsg struct {
		Site  string
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	query *sky.Query
	sites []site.Site

	// UI state
	width    int
	height   int
	ready    bool
	cursor   int
	selected string // site of the shown or pending result
	loading  bool
	animTick int

	// Last result
	obs      *sky.Observation
	duration time.Duration
	lastErr  error
}

// New creates a new root UI model. initial preselects a site by name and
// may be empty.
func New(query *sky.Query, sites []site.Site, initial string) Model {
	m := Model{query: query, sites: sites}
	for i, s := range sites {
		if strings.EqualFold(s.Name, initial) {
			m.cursor = i
			break
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.sites)-1 {
				m.cursor++
			}

		case "enter":
			if len(m.sites) > 0 {
				cmds = append(cmds, m.startQuery(m.sites[m.cursor]))
			}

		case "r":
			if s, ok := m.selectedSite(); ok {
				cmds = append(cmds, m.startQuery(s))
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if s, ok := m.selectedSite(); ok && !m.loading {
			cmds = append(cmds, m.startQuery(s))
		}

	case AnimTickMsg:
		if m.loading {
			m.animTick++
			cmds = append(cmds, animTickCmd())
		}

	case ObservationMsg:
		// Results for a site the user has since moved away from are dropped.
		if msg.Site != m.selected {
			break
		}
		obs := msg.Observation
		m.obs = &obs
		m.duration = msg.Duration
		m.lastErr = nil
		m.loading = false

	case ErrorMsg:
		if msg.Site != m.selected {
			break
		}
		m.lastErr = msg.Error
		m.loading = false
	}

	return m, tea.Batch(cmds...)
}

// startQuery marks s as selected and returns the command that queries it.
func (m *Model) startQuery(s site.Site) tea.Cmd {
	if m.selected != s.Name {
		m.obs = nil
	}
	m.selected = s.Name
	m.loading = true
	m.lastErr = nil
	return tea.Batch(queryCmd(m.query, s), animTickCmd())
}

func (m Model) selectedSite() (site.Site, bool) {
	for _, s := range m.sites {
		if s.Name == m.selected {
			return s, true
		}
	}
	return site.Site{}, false
}

// Cursor returns the index of the highlighted site.
func (m Model) Cursor() int {
	return m.cursor
}

// Observation returns the last successful result, if any.
func (m Model) Observation() (sky.Observation, bool) {
	if m.obs == nil {
		return sky.Observation{}, false
	}
	return *m.obs, true
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sites := renderSiteList(m.sites, m.cursor, m.selected)
	results := m.renderResults()
	content := lipgloss.JoinHorizontal(lipgloss.Top, sites, "  ", results)

	return m.renderHeader() + "\n" + content + "\n\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := "  ls-skyscope"
	runes := []rune(title)

	var b strings.Builder
	b.WriteString("\n")
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 1)
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(r)))
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · what's up tonight", version.Version)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.loading:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing "+m.selected+"...")
	case m.obs != nil:
		status = dimStyle.Render(fmt.Sprintf("%s via %s (%s)", m.selected, m.query.Engine(),
			m.duration.Round(time.Millisecond)))
	default:
		status = dimStyle.Render("Pick a site")
	}

	help := dimStyle.Render("↑↓: site | enter: query | r: refresh | q: quit")
	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// queryCmd runs a sky query for s at the current time off the UI loop.
func queryCmd(q *sky.Query, s site.Site) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), QueryTimeout)
		defer cancel()

		start := time.Now()
		obs, err := q.Observe(ctx, s.LatDeg, s.LonDeg, time.Time{})
		if err != nil {
			return ErrorMsg{Site: s.Name, Error: err}
		}
		obs.Observer.Name = s.Name
		return ObservationMsg{Site: s.Name, Observation: obs, Duration: time.Since(start)}
	}
}

// gradientColor returns a hex color for a position in the title gradient:
// blue -> purple -> magenta -> pink, fading toward the bottom.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	switch {
	case xRatio < 0.33:
		t := xRatio / 0.33
		r, g, b = 59+t*(139-59), 130+t*(92-130), 246
	case xRatio < 0.66:
		t := (xRatio - 0.33) / 0.33
		r, g, b = 139+t*(217-139), 92+t*(70-92), 246+t*(239-246)
	default:
		t := (xRatio - 0.66) / 0.34
		r, g, b = 217+t*(236-217), 70+t*(72-70), 239+t*(153-239)
	}

	fade := 1.0 - yRatio*0.5
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*fade), clampByte(g*fade), clampByte(b*fade))
}

func clampByte(v float64) int {
	return int(min(max(v, 0), 255))
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var hexColor string
		switch {
		case dist <= 1:
			hexColor = "#B4A0DC"
		case dist <= 3:
			hexColor = "#8C78B4"
		case dist <= 5:
			hexColor = "#6E5A96"
		default:
			hexColor = "#504678"
		}
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(string(r)))
	}
	return result.String()
}
