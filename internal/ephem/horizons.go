package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-skyscope/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// PositionCacheTTL is how long a fetched position is reused.
	PositionCacheTTL = 5 * time.Minute

	// MaxCachedPositions caps the position cache. Every distinct
	// (body, time, site) is a new key, so without a cap a long-running
	// server grows without bound.
	MaxCachedPositions = 512

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// Horizons queries JPL Horizons for apparent positions of solar-system
// bodies. Horizons does not serve named stars; those are delegated to a
// star engine (Local by default).
type Horizons struct {
	client  *http.Client
	baseURL string
	stars   Ephemeris

	now func() time.Time

	mu    sync.RWMutex
	cache map[positionKey]cachedPosition
}

// positionKey identifies one query exactly.
type positionKey struct {
	body     BodyID
	unixNano int64
	lat, lon float64
	elevM    float64
}

// cachedPosition stores a fetched position.
type cachedPosition struct {
	pos       Position
	fetchedAt time.Time
}

// HorizonsOption configures a Horizons engine.
type HorizonsOption func(*Horizons)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) HorizonsOption {
	return func(h *Horizons) { h.client = c }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) HorizonsOption {
	return func(h *Horizons) { h.baseURL = u }
}

// WithStarEngine sets the engine that answers ComputeStar.
func WithStarEngine(e Ephemeris) HorizonsOption {
	return func(h *Horizons) { h.stars = e }
}

// NewHorizons creates a new Horizons API client.
func NewHorizons(opts ...HorizonsOption) *Horizons {
	h := &Horizons{
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		baseURL: HorizonsAPIURL,
		now:     time.Now,
		cache:   make(map[positionKey]cachedPosition),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.stars == nil {
		h.stars = NewLocal()
	}
	return h
}

// Name implements Ephemeris.
func (h *Horizons) Name() string {
	return "Horizons"
}

// Compute implements Ephemeris.
func (h *Horizons) Compute(ctx context.Context, body BodyID, obs astro.Observer, t time.Time) (Position, error) {
	info, ok := BodiesByID[body]
	if !ok {
		return Position{}, fmt.Errorf("%s: %w", body, ErrUnknownBody)
	}
	t = t.UTC()

	key := positionKey{body: body, unixNano: t.UnixNano(), lat: obs.LatDeg, lon: obs.LonDeg, elevM: obs.ElevationM}
	h.mu.RLock()
	cached, ok := h.cache[key]
	h.mu.RUnlock()
	if ok && h.now().Sub(cached.fetchedAt) < PositionCacheTTL {
		return cached.pos, nil
	}

	rows, err := h.query(ctx, body, obs, t)
	if err != nil {
		return Position{}, err
	}
	if len(rows) == 0 {
		return Position{}, fmt.Errorf("no data returned for %s", info.Name)
	}

	row := rows[0]
	if math.IsNaN(row.Magnitude) {
		return Position{}, fmt.Errorf("no magnitude returned for %s", info.Name)
	}
	coord := astro.SkyCoord{
		RAdeg:  row.RAdeg,
		DecDeg: row.DecDeg,
		AzDeg:  row.AzDeg,
		ElDeg:  row.ElDeg,
	}
	pos := Position{
		Name:      info.Name,
		Time:      t,
		Coord:     coord,
		Magnitude: row.Magnitude,
	}
	if body == BodyMoon {
		pos.Phase, pos.HasPhase = row.Illumination, true
		if math.IsNaN(row.Illumination) {
			// Horizons leaves Illu% as n.a. for some sites and times; the
			// Moon always has a phase, so take it from the local theory.
			pos.Phase = astro.MoonApparent(astro.EphemerisDay(t)).Illuminated * 100
		}
	}

	h.store(key, pos)
	return pos, nil
}

// store inserts a position, dropping expired entries first and then the
// oldest entry while the cache is full.
func (h *Horizons) store(key positionKey, pos Position) {
	now := h.now()

	h.mu.Lock()
	defer h.mu.Unlock()

	for k, c := range h.cache {
		if now.Sub(c.fetchedAt) >= PositionCacheTTL {
			delete(h.cache, k)
		}
	}
	for len(h.cache) >= MaxCachedPositions {
		var oldest positionKey
		var oldestAt time.Time
		first := true
		for k, c := range h.cache {
			if first || c.fetchedAt.Before(oldestAt) {
				oldest, oldestAt, first = k, c.fetchedAt, false
			}
		}
		delete(h.cache, oldest)
	}
	h.cache[key] = cachedPosition{pos: pos, fetchedAt: now}
}

// ComputeStar implements Ephemeris by delegating to the star engine.
func (h *Horizons) ComputeStar(ctx context.Context, name string, obs astro.Observer, t time.Time) (Position, error) {
	return h.stars.ComputeStar(ctx, name, obs, t)
}

// Constellation implements Ephemeris.
func (h *Horizons) Constellation(pos Position) string {
	return constellationOf(pos)
}

// InvalidateCache drops all cached positions.
func (h *Horizons) InvalidateCache() {
	h.mu.Lock()
	h.cache = make(map[positionKey]cachedPosition)
	h.mu.Unlock()
}

// query makes a single-step OBSERVER request to the Horizons API.
func (h *Horizons) query(ctx context.Context, body BodyID, obs astro.Observer, t time.Time) ([]observerRow, error) {
	// Values must be quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", body))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'coord@399'")
	params.Set("COORD_TYPE", "GEODETIC")
	params.Set("SITE_COORD", fmt.Sprintf("'%.6f,%.6f,%.4f'", obs.LonDeg, obs.LatDeg, obs.ElevationM/1000))
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(t.Add(time.Minute))))
	params.Set("STEP_SIZE", "'1 m'")
	params.Set("TIME_DIGITS", "SECONDS")
	params.Set("QUANTITIES", "'2,4,9,10'") // apparent RA/Dec, Az/El, magnitude, illumination
	params.Set("ANG_FORMAT", "DEG")
	params.Set("APPARENT", "AIRLESS")
	params.Set("CSV_FORMAT", "YES")

	reqURL := h.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("horizons request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return parseHorizonsResponse(payload)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// observerRow is one row of an OBSERVER table with quantities 2,4,9,10.
type observerRow struct {
	Time          time.Time
	RAdeg, DecDeg float64
	AzDeg, ElDeg  float64
	Magnitude     float64 // NaN when Horizons reports n.a.
	SurfaceBright float64
	Illumination  float64 // percent
}

// parseHorizonsResponse parses the Horizons JSON response.
func parseHorizonsResponse(body []byte) ([]observerRow, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("horizons error: %s", strings.TrimSpace(resp.Error))
	}

	// The actual ephemeris data is in resp.Result as a text blob
	return parseObserverTable(resp.Result)
}

// parseObserverTable extracts rows from the Horizons text output.
func parseObserverTable(result string) ([]observerRow, error) {
	// Find the data section between $$SOE and $$EOE markers
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find ephemeris data markers")
	}

	var rows []observerRow
	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row, err := parseObserverRow(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// parseObserverRow parses a single CSV data line:
//
//	2023-Nov-13 00:00:00, , ,  38.91842,  14.62123, 120.519820, 45.123456, -2.92, 5.38, 99.145,
//
// Fields: date, solar presence, lunar presence, RA, Dec, Az, El, APmag,
// S-brt, Illu%.
func parseObserverRow(line string) (observerRow, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 10 {
		return observerRow{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	t, err := parseHorizonsDateTime(fields[0])
	if err != nil {
		return observerRow{}, err
	}

	var row observerRow
	row.Time = t

	required := []struct {
		dst  *float64
		src  string
		name string
	}{
		{&row.RAdeg, fields[3], "RA"},
		{&row.DecDeg, fields[4], "Dec"},
		{&row.AzDeg, fields[5], "azimuth"},
		{&row.ElDeg, fields[6], "elevation"},
	}
	for _, r := range required {
		v, err := strconv.ParseFloat(r.src, 64)
		if err != nil {
			return observerRow{}, fmt.Errorf("invalid %s %q: %w", r.name, r.src, err)
		}
		*r.dst = v
	}

	row.Magnitude = parseOptionalFloat(fields[7])
	row.SurfaceBright = parseOptionalFloat(fields[8])
	row.Illumination = parseOptionalFloat(fields[9])

	return row, nil
}

// parseOptionalFloat returns NaN for "n.a." or anything unparseable.
func parseOptionalFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseHorizonsDateTime parses Horizons date format like "2025-Dec-05 00:00".
func parseHorizonsDateTime(s string) (time.Time, error) {
	for _, layout := range []string{
		"2006-Jan-02 15:04:05.000",
		"2006-Jan-02 15:04:05",
		"2006-Jan-02 15:04",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for the Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
