// Package httpapi serves the process workflow over REST.
//
// Callers are authenticated upstream; the acting employee arrives in the
// X-Actor-ID and X-Actor-Role headers. Request bodies are JSON except for
// uploads, which are multipart with the PDF in a "file" part.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/juris/internal/logger"
)

// Options tunes the server. The zero value disables rate limiting and
// serves metrics from a private registry.
type Options struct {
	// RateLimit is the sustained requests per second across all clients.
	RateLimit float64
	// Burst is the token bucket size. Defaults to RateLimit rounded up.
	Burst int
	// Registry receives the HTTP metrics and backs GET /metrics.
	Registry *prometheus.Registry
	// Logger defaults to the application logger.
	Logger *slog.Logger
}

// Server routes REST requests to the driving ports.
type Server struct {
	ports   *Ports
	logger  *slog.Logger
	limiter *rate.Limiter
	handler http.Handler

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewServer builds the handler tree for ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Slog()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		ports:  ports,
		logger: opts.Logger,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "juris_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "juris_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if err := opts.Registry.Register(s.requests); err != nil {
		return nil, fmt.Errorf("registering request counter: %w", err)
	}
	if err := opts.Registry.Register(s.duration); err != nil {
		return nil, fmt.Errorf("registering latency histogram: %w", err)
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = int(opts.RateLimit + 0.999)
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	api := http.NewServeMux()
	s.registerProcessRoutes(api)
	s.registerDocumentRoutes(api)
	s.registerMeetingRoutes(api)
	s.registerPartyRoutes(api)

	root := http.NewServeMux()
	root.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	root.Handle("/", s.instrument(s.rateLimit(api)))

	s.handler = root
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records metrics and a log line per request. The route label is
// the matched pattern, so path parameters do not explode cardinality.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.requests.WithLabelValues(r.Method, route, fmt.Sprint(rec.status)).Inc()
		s.duration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
			"actor", r.Header.Get(headerActorID),
		)
	})
}

// rateLimit rejects requests beyond the configured rate with 429.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			s.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
