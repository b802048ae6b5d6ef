package ephem

import (
	"context"
	"fmt"
	"time"

	"github.com/litescript/ls-skyscope/internal/astro"
)

// SunMagnitude is the Sun's apparent visual magnitude.
const SunMagnitude = -26.74

// Local computes positions in-process from the Meeus series and Keplerian
// planetary elements. It holds no state and is safe for concurrent use.
type Local struct{}

// NewLocal creates a local engine.
func NewLocal() *Local {
	return &Local{}
}

// Name implements Ephemeris.
func (l *Local) Name() string {
	return "Local"
}

// Compute implements Ephemeris.
func (l *Local) Compute(ctx context.Context, body BodyID, obs astro.Observer, t time.Time) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	info, ok := BodiesByID[body]
	if !ok {
		return Position{}, fmt.Errorf("%s: %w", body, ErrUnknownBody)
	}

	t = t.UTC()
	jde := astro.EphemerisDay(t)
	pos := Position{Name: info.Name, Time: t}

	switch {
	case body == BodySun:
		ra, dec := astro.SunPosition(t)
		pos.Coord = astro.EquatorialToHorizontal(astro.SkyCoord{RAdeg: ra, DecDeg: dec, RangeKm: astro.AU}, obs, t)
		pos.Magnitude = SunMagnitude

	case body == BodyMoon:
		m := astro.MoonApparent(jde)
		pos.Coord = astro.EquatorialToHorizontal(astro.SkyCoord{RAdeg: m.RAdeg, DecDeg: m.DecDeg, RangeKm: m.DistanceKm}, obs, t)
		pos.Coord.ElDeg = astro.TopocentricElevation(pos.Coord.ElDeg, m.DistanceKm)
		pos.Magnitude = m.Magnitude
		pos.Phase = m.Illuminated * 100
		pos.HasPhase = true

	case info.IsPlanet:
		if !astro.ElementsValid(jde) {
			return Position{}, fmt.Errorf("%s at %s: %w", info.Name, t.Format(time.RFC3339), ErrOutOfRange)
		}
		p := astro.PlanetApparent(info.Planet, jde)
		pos.Coord = astro.EquatorialToHorizontal(astro.SkyCoord{RAdeg: p.RAdeg, DecDeg: p.DecDeg, RangeKm: p.DistanceAU * astro.AU}, obs, t)
		pos.Magnitude = p.Magnitude

	default:
		return Position{}, fmt.Errorf("%s: %w", body, ErrUnknownBody)
	}

	return pos, nil
}

// ComputeStar implements Ephemeris.
func (l *Local) ComputeStar(ctx context.Context, name string, obs astro.Observer, t time.Time) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}
	star, ok := astro.LookupStar(name)
	if !ok {
		return Position{}, fmt.Errorf("%q: %w", name, ErrUnknownStar)
	}

	t = t.UTC()
	ra, dec := star.Apparent(astro.EphemerisDay(t))
	return Position{
		Name:      star.Name,
		Time:      t,
		Coord:     astro.EquatorialToHorizontal(astro.SkyCoord{RAdeg: ra, DecDeg: dec}, obs, t),
		Magnitude: star.Mag,
	}, nil
}

// Constellation implements Ephemeris. Named stars report their catalogued
// constellation; everything else is placed by ecliptic band.
func (l *Local) Constellation(pos Position) string {
	return constellationOf(pos)
}

func constellationOf(pos Position) string {
	if star, ok := astro.LookupStar(pos.Name); ok {
		return star.Constellation
	}
	return astro.ConstellationOf(pos.Coord.RAdeg, pos.Coord.DecDeg, astro.EphemerisDay(pos.Time))
}
