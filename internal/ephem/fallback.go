package ephem

import (
	"context"
	"time"

	"github.com/litescript/ls-skyscope/internal/astro"
	"github.com/litescript/ls-skyscope/internal/logging"
)

// Fallback asks Primary first and Secondary when Primary fails. A
// cancelled context is returned as-is without consulting Secondary.
type Fallback struct {
	Primary   Ephemeris
	Secondary Ephemeris
	log       *logging.Logger
}

// NewFallback composes two engines.
func NewFallback(primary, secondary Ephemeris, log *logging.Logger) *Fallback {
	if log == nil {
		log = logging.Discard()
	}
	return &Fallback{Primary: primary, Secondary: secondary, log: log}
}

// Name implements Ephemeris.
func (f *Fallback) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

// Compute implements Ephemeris.
func (f *Fallback) Compute(ctx context.Context, body BodyID, obs astro.Observer, t time.Time) (Position, error) {
	pos, err := f.Primary.Compute(ctx, body, obs, t)
	if err == nil || ctx.Err() != nil {
		return pos, err
	}
	f.log.Warn("%s failed for %s, using %s: %v", f.Primary.Name(), body, f.Secondary.Name(), err)
	return f.Secondary.Compute(ctx, body, obs, t)
}

// ComputeStar implements Ephemeris.
func (f *Fallback) ComputeStar(ctx context.Context, name string, obs astro.Observer, t time.Time) (Position, error) {
	pos, err := f.Primary.ComputeStar(ctx, name, obs, t)
	if err == nil || ctx.Err() != nil {
		return pos, err
	}
	f.log.Warn("%s failed for star %s, using %s: %v", f.Primary.Name(), name, f.Secondary.Name(), err)
	return f.Secondary.ComputeStar(ctx, name, obs, t)
}

// Constellation implements Ephemeris.
func (f *Fallback) Constellation(pos Position) string {
	return f.Primary.Constellation(pos)
}
