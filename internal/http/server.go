package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"orbital/internal/log"
	"orbital/internal/middleware/ratelimit"
	"orbital/internal/middleware/security"
	"orbital/internal/middleware/trace"
	"orbital/internal/services"
)

// Dependencies are the services the API serves from.
type Dependencies struct {
	Dashboard   *services.DashboardService
	Preferences *services.PreferenceService
	Exports     *services.ExportService

	// Ready reports whether the preference store is usable. Nil means
	// always ready.
	Ready func(ctx context.Context) error

	Logger    *log.Logger
	RateLimit ratelimit.Config

	// Now is the request clock. Nil means time.Now.
	Now func() time.Time
}

type Server struct {
	http.Server

	dashboard   *services.DashboardService
	preferences *services.PreferenceService
	exports     *services.ExportService
	ready       func(ctx context.Context) error

	logger      *log.Logger
	rateLimiter *ratelimit.Limiter
	tracer      *trace.Middleware
	now         func() time.Time
	startedAt   time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		dashboard:   deps.Dashboard,
		preferences: deps.Preferences,
		exports:     deps.Exports,
		ready:       deps.Ready,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: ratelimit.NewLimiter(deps.RateLimit),
		tracer:      trace.NewMiddleware(logger, security.ExtractClientIP),
		now:         now,
		startedAt:   time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions.csv", s.handleTransactionsCSV)
	mux.HandleFunc("/api/presets", s.handlePresets)
	mux.Handle("/api/preferences", security.NoStore(http.HandlerFunc(s.handlePreferences)))
	mux.Handle("/api/preferences/sidebar/toggle", security.NoStore(http.HandlerFunc(s.handleToggleSidebar)))
	mux.HandleFunc("/api/exports", s.handleCreateExport)
	mux.HandleFunc("/", s.handleNotFound)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.rateLimiter.Middleware(security.ExtractClientIP, ratelimit.MutatingOnly, s.onRateLimited)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.tracer.Middleware(headers.Middleware(limit(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, security.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	TooManyRequestsError("1").Write(w)
}

// Shutdown gracefully shuts down the server and the rate limiter cleanup
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
