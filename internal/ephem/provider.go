// Package ephem provides apparent positions of the Sun, Moon, planets and
// named stars for an observer on Earth.
package ephem

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/litescript/ls-skyscope/internal/astro"
	"github.com/litescript/ls-skyscope/internal/logging"
)

var (
	// ErrUnknownBody is returned for a body the engine cannot compute.
	ErrUnknownBody = errors.New("unknown body")

	// ErrUnknownStar is returned for a star name missing from the database.
	ErrUnknownStar = errors.New("unknown star")

	// ErrOutOfRange is returned when the requested time lies outside the
	// engine's validity window.
	ErrOutOfRange = errors.New("time outside ephemeris range")
)

// Position is the apparent place of a body or star as seen by an observer.
type Position struct {
	Name      string
	Time      time.Time
	Coord     astro.SkyCoord // apparent RA/Dec of date plus Az/El, degrees
	Magnitude float64
	Phase     float64 // illuminated fraction in percent, 0-100
	HasPhase  bool
}

// Ephemeris computes apparent positions.
type Ephemeris interface {
	// Name returns the engine name for display/logging.
	Name() string

	// Compute returns the position of a solar-system body.
	Compute(ctx context.Context, body BodyID, obs astro.Observer, t time.Time) (Position, error)

	// ComputeStar returns the position of a named star.
	ComputeStar(ctx context.Context, name string, obs astro.Observer, t time.Time) (Position, error)

	// Constellation returns the constellation a computed position lies in.
	Constellation(pos Position) string
}

// Mode represents which ephemeris engine to use.
type Mode int

const (
	ModeLocal    Mode = iota // In-process Meeus engine (default)
	ModeHorizons             // JPL Horizons
	ModeAuto                 // Try Horizons, fall back to local
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeHorizons:
		return "horizons"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// LookupMode returns the mode for a name and whether it is recognised.
func LookupMode(s string) (Mode, bool) {
	switch s {
	case "local":
		return ModeLocal, true
	case "horizons":
		return ModeHorizons, true
	case "auto":
		return ModeAuto, true
	default:
		return ModeLocal, false
	}
}

// ParseMode parses a mode string, defaulting to local.
func ParseMode(s string) Mode {
	m, _ := LookupMode(s)
	return m
}

// Options configures engines built by New.
type Options struct {
	HorizonsURL string       // defaults to HorizonsAPIURL
	HTTPClient  *http.Client // defaults to a client with RequestTimeout
	Logger      *logging.Logger
}

// New builds the engine for a mode.
func New(mode Mode, opts Options) Ephemeris {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	local := NewLocal()

	horizons := func() *Horizons {
		var hopts []HorizonsOption
		if opts.HorizonsURL != "" {
			hopts = append(hopts, WithBaseURL(opts.HorizonsURL))
		}
		if opts.HTTPClient != nil {
			hopts = append(hopts, WithHTTPClient(opts.HTTPClient))
		}
		hopts = append(hopts, WithStarEngine(local))
		return NewHorizons(hopts...)
	}

	switch mode {
	case ModeHorizons:
		return horizons()
	case ModeAuto:
		return NewFallback(horizons(), local, log)
	default:
		return local
	}
}
