// Package metrics exposes Prometheus instrumentation for the HTTP API and
// sky queries.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyscope_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyscope_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyscope_queries_total",
			Help: "Sky queries by ephemeris engine and outcome.",
		},
		[]string{"engine", "outcome"},
	)

	queryDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyscope_query_duration_seconds",
			Help:    "Sky query duration in seconds.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .05, .25, 1, 5, 30},
		},
		[]string{"engine"},
	)

	visibleObjects = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyscope_visible_objects",
			Help:    "Number of objects returned per successful query.",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	rateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skyscope_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		},
	)
)

// Query outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled" // caller went away or deadline passed
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(queriesTotal)
	prometheus.MustRegister(queryDurationSeconds)
	prometheus.MustRegister(visibleObjects)
	prometheus.MustRegister(rateLimitedTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordQuery records one sky query. visible is ignored unless the outcome
// is OutcomeOK.
func RecordQuery(engine, outcome string, d time.Duration, visible int) {
	queriesTotal.WithLabelValues(engine, outcome).Inc()
	queryDurationSeconds.WithLabelValues(engine).Observe(d.Seconds())
	if outcome == OutcomeOK {
		visibleObjects.Observe(float64(visible))
	}
}

// IncRateLimited counts a rejected request.
func IncRateLimited() {
	rateLimitedTotal.Inc()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// UnmatchedRoute labels requests that reached no registered pattern:
// unknown paths and requests rejected before routing.
const UnmatchedRoute = "other"

// routeLabel returns the ServeMux pattern that served r, without its method,
// so label cardinality is bounded by the route table.
func routeLabel(r *http.Request) string {
	p := r.Pattern
	if p == "" {
		return UnmatchedRoute
	}
	if i := strings.IndexByte(p, ' '); i >= 0 {
		p = strings.TrimSpace(p[i+1:])
	}
	return p
}

// Middleware records request count and duration for each request. It must
// wrap the ServeMux so the matched pattern is set once next returns.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)

		route := routeLabel(r)
		httpRequestsTotal.WithLabelValues(route, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(route, r.Method).Observe(duration)
	})
}
