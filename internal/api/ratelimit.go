package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/litescript/ls-skyscope/internal/metrics"
)

// Buckets unused for limiterIdleTTL, or for as long as a bucket takes to
// refill if that is longer, are dropped: by then they are indistinguishable
// from a fresh one.
const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	ips       map[string]*clientLimiter
	mu        sync.Mutex
	r         rate.Limit
	b         int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter creates a limiter allowing r requests per second with
// bursts of b for each client.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	idle := limiterIdleTTL
	if r != rate.Inf && r > 0 {
		if refill := time.Duration(float64(b) / float64(r) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &IPRateLimiter{
		ips:  make(map[string]*clientLimiter),
		r:    r,
		b:    b,
		idle: idle,
		now:  time.Now,
	}
}

// GetLimiter returns the bucket for ip, creating it on first use.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterSweepInterval {
		l.sweep(now)
	}

	c, exists := l.ips[ip]
	if !exists {
		c = &clientLimiter{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = c
	}
	c.lastSeen = now

	return c.limiter
}

// sweep drops idle buckets. Caller holds l.mu.
func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, c := range l.ips {
		if now.Sub(c.lastSeen) >= l.idle {
			delete(l.ips, ip)
		}
	}
	l.lastSweep = now
}

// clientIP strips the port from the request's remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimitMiddleware rejects requests over the client's budget with 429.
// Probe and metrics paths are never limited.
func rateLimitMiddleware(l *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if probePath(r.URL.Path) || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			if !l.GetLimiter(clientIP(r)).Allow() {
				metrics.IncRateLimited()
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
