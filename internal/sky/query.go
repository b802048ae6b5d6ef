package sky

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-skyscope/internal/astro"
	"github.com/litescript/ls-skyscope/internal/ephem"
	"github.com/litescript/ls-skyscope/internal/logging"
)

// Query computes visible objects with an ephemeris engine. It holds only
// configuration and is safe for concurrent use.
type Query struct {
	eph ephem.Ephemeris
	now func() time.Time
	log *logging.Logger
}

// Option configures a Query.
type Option func(*Query)

// WithClock sets the clock used when no time is given.
func WithClock(now func() time.Time) Option {
	return func(q *Query) { q.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) Option {
	return func(q *Query) { q.log = log }
}

// New creates a query backed by eph.
func New(eph ephem.Ephemeris, opts ...Option) *Query {
	q := &Query{
		eph: eph,
		now: time.Now,
		log: logging.Discard(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Engine returns the name of the ephemeris engine in use.
func (q *Query) Engine() string {
	return q.eph.Name()
}

// Calculate returns the objects visible from (lat, lon) at t, bodies first
// in registry order, then catalog stars in catalog order. A zero t means now.
func (q *Query) Calculate(ctx context.Context, lat, lon float64, t time.Time) ([]VisibleObject, error) {
	obs, err := q.Observe(ctx, lat, lon, t)
	if err != nil {
		return nil, err
	}
	return obs.Objects, nil
}

// Observe is Calculate plus the Sun altitude and twilight context the
// result was derived from.
func (q *Query) Observe(ctx context.Context, lat, lon float64, t time.Time) (Observation, error) {
	if err := validateObserver(lat, lon); err != nil {
		return Observation{}, err
	}
	if t.IsZero() {
		t = q.now()
	}
	t = t.UTC()
	observer := astro.Observer{LatDeg: lat, LonDeg: lon}

	sun, err := q.eph.Compute(ctx, ephem.BodySun, observer, t)
	if err != nil {
		return Observation{}, &ComputationError{Object: displayName(ephem.BodySun), Err: err}
	}
	sunAlt := sun.Coord.ElDeg
	dark := astro.IsDark(sunAlt)

	objects := make([]VisibleObject, 0, len(registry)+len(catalog))

	for _, body := range registry {
		name := displayName(body)
		pos, err := q.eph.Compute(ctx, body, observer, t)
		if err != nil {
			return Observation{}, &ComputationError{Object: name, Err: err}
		}
		if !astro.AboveHorizon(pos.Coord.ElDeg) {
			continue
		}

		rec := VisibleObject{
			Name:          name,
			Type:          typeOf(body),
			Constellation: q.eph.Constellation(pos),
			Altitude:      pos.Coord.ElDeg,
			Azimuth:       pos.Coord.AzDeg,
			Magnitude:     pos.Magnitude,
		}
		if body == ephem.BodyMoon && pos.HasPhase {
			phase := math.Max(0, math.Min(100, pos.Phase))
			rec.Phase = &phase
		}
		objects = append(objects, rec)
	}

	if dark {
		for _, star := range catalog {
			pos, err := q.eph.ComputeStar(ctx, star.Name, observer, t)
			if err != nil {
				return Observation{}, &ComputationError{Object: star.Name, Err: err}
			}
			if !astro.AboveHorizon(pos.Coord.ElDeg) {
				continue
			}
			objects = append(objects, VisibleObject{
				Name:          star.Name,
				Type:          TypeStar,
				Constellation: star.Constellation,
				Altitude:      pos.Coord.ElDeg,
				Azimuth:       pos.Coord.AzDeg,
				Magnitude:     star.Magnitude,
			})
		}
	}

	q.log.Debug("sky query lat=%.4f lon=%.4f t=%s engine=%s sun=%.2f dark=%v visible=%d",
		lat, lon, t.Format(time.RFC3339), q.eph.Name(), sunAlt, dark, len(objects))

	return Observation{
		Observer:    observer,
		Time:        t,
		SunAltitude: sunAlt,
		Twilight:    astro.ClassifyTwilight(sunAlt),
		Dark:        dark,
		Objects:     objects,
	}, nil
}

func validateObserver(lat, lon float64) error {
	switch {
	case math.IsNaN(lat) || math.IsInf(lat, 0):
		return fmt.Errorf("%w: latitude %v is not finite", ErrInvalidObserver, lat)
	case math.IsNaN(lon) || math.IsInf(lon, 0):
		return fmt.Errorf("%w: longitude %v is not finite", ErrInvalidObserver, lon)
	case lat < -90 || lat > 90:
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidObserver, lat)
	case lon < -180 || lon > 180:
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidObserver, lon)
	}
	return nil
}
