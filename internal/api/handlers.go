package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-skyscope/internal/export"
	"github.com/litescript/ls-skyscope/internal/logging"
	"github.com/litescript/ls-skyscope/internal/metrics"
	"github.com/litescript/ls-skyscope/internal/site"
	"github.com/litescript/ls-skyscope/internal/sky"
)

type handlers struct {
	query *sky.Query
	sites *site.Registry
	log   *logging.Logger
}

// badRequest marks parameter errors.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

// observerParams is the parsed location and time of a request.
type observerParams struct {
	name     string
	lat, lon float64
	t        time.Time // zero means now
}

// parseObserver reads either site=name or lat=..&lon=.., plus an optional
// RFC 3339 time.
func (h *handlers) parseObserver(r *http.Request) (observerParams, error) {
	q := r.URL.Query()
	var p observerParams

	if name := strings.TrimSpace(q.Get("site")); name != "" {
		if q.Has("lat") || q.Has("lon") {
			return p, badRequest{"site cannot be combined with lat/lon"}
		}
		s, ok := h.sites.Lookup(name)
		if !ok {
			return p, badRequest{fmt.Sprintf("unknown site %q", name)}
		}
		p.name, p.lat, p.lon = s.Name, s.LatDeg, s.LonDeg
	} else {
		var err error
		if p.lat, err = parseCoord(q.Get("lat"), "lat"); err != nil {
			return p, err
		}
		if p.lon, err = parseCoord(q.Get("lon"), "lon"); err != nil {
			return p, err
		}
	}

	if ts := q.Get("time"); ts != "" {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return p, badRequest{fmt.Sprintf("invalid time %q: want RFC 3339", ts)}
		}
		p.t = t
	}
	return p, nil
}

func parseCoord(s, name string) (float64, error) {
	if s == "" {
		return 0, badRequest{fmt.Sprintf("missing %s", name)}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, badRequest{fmt.Sprintf("invalid %s %q", name, s)}
	}
	return v, nil
}

// observe runs the query and records its metrics.
func (h *handlers) observe(ctx context.Context, p observerParams) (sky.Observation, error) {
	start := time.Now()
	obs, err := h.query.Observe(ctx, p.lat, p.lon, p.t)
	engine := h.query.Engine()

	switch {
	case err == nil:
		obs.Observer.Name = p.name
		metrics.RecordQuery(engine, metrics.OutcomeOK, time.Since(start), len(obs.Objects))
	case errors.Is(err, sky.ErrInvalidObserver):
		metrics.RecordQuery(engine, metrics.OutcomeInvalid, time.Since(start), 0)
	case isCancelled(err):
		metrics.RecordQuery(engine, metrics.OutcomeCancelled, time.Since(start), 0)
		h.log.Debug("sky query cancelled lat=%.4f lon=%.4f: %v", p.lat, p.lon, err)
	default:
		metrics.RecordQuery(engine, metrics.OutcomeError, time.Since(start), 0)
		h.log.Warn("sky query failed lat=%.4f lon=%.4f: %v", p.lat, p.lon, err)
	}
	return obs, err
}

// isCancelled reports whether err came from the request context rather than
// the ephemeris. ComputationError unwraps, so this must be checked first.
func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// handleError maps query errors onto status codes.
func handleError(w http.ResponseWriter, err error) {
	var br badRequest
	var ce *sky.ComputationError
	switch {
	case errors.As(err, &br), errors.Is(err, sky.ErrInvalidObserver):
		writeError(w, http.StatusBadRequest, err.Error())
	case isCancelled(err):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	case errors.As(err, &ce):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// skyObjects serves the bare array of visible objects.
func (h *handlers) skyObjects(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseObserver(r)
	if err != nil {
		handleError(w, err)
		return
	}
	obs, err := h.observe(r.Context(), p)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obs.Objects)
}

// observation serves the full snapshot.
func (h *handlers) observation(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseObserver(r)
	if err != nil {
		handleError(w, err)
		return
	}
	obs, err := h.observe(r.Context(), p)
	if err != nil {
		handleError(w, err)
		return
	}
	snap := export.NewSnapshot(obs, time.Now())
	snap.Engine = h.query.Engine()
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) listSites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sites.Sites())
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
