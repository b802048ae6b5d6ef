// Package api serves sky queries over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/litescript/ls-skyscope/internal/logging"
	"github.com/litescript/ls-skyscope/internal/metrics"
	"github.com/litescript/ls-skyscope/internal/site"
	"github.com/litescript/ls-skyscope/internal/sky"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Options configures the API.
type Options struct {
	Query       *sky.Query
	Sites       *site.Registry
	Logger      *logging.Logger
	RateLimit   rate.Limit // per client, requests per second
	Burst       int
	AllowOrigin string // empty disables CORS headers
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	log        *logging.Logger
}

// NewHandler builds the routed, instrumented handler.
func NewHandler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Sites == nil {
		opts.Sites, _ = site.NewRegistry()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = rate.Inf
	}
	if opts.Burst < 1 {
		opts.Burst = 1
	}

	h := &handlers{query: opts.Query, sites: opts.Sites, log: opts.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/sky-objects", h.skyObjects)
	mux.HandleFunc("GET /api/observation", h.observation)
	mux.HandleFunc("GET /api/sites", h.listSites)

	// Build middleware chain: metrics -> logging -> cors -> rate limit -> mux.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(NewIPRateLimiter(opts.RateLimit, opts.Burst))(handler)
	handler = corsMiddleware(opts.AllowOrigin)(handler)
	handler = loggingMiddleware(opts.Logger.Slog())(handler)
	handler = metrics.Middleware(handler)
	return handler
}

// NewServer creates a configured HTTP server.
func NewServer(addr string, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(opts),
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: log,
	}
}

// HTTPServer returns the underlying *http.Server.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server addr=%s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// probePath returns true for health probe paths that should not log at INFO.
func probePath(path string) bool {
	return path == "/healthz"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			duration := time.Since(start)
			level := slog.LevelInfo
			if probePath(r.URL.Path) {
				level = slog.LevelDebug
			}

			logger.Log(r.Context(), level, "request",
				"component", "api",
				"method", r.Method,
				"path", r.URL.Path,
				"status", strconv.Itoa(sr.statusCode),
				"duration_ms", duration.Milliseconds(),
				"remote_ip", r.RemoteAddr,
			)
		})
	}
}

func corsMiddleware(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if origin == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
