// Package web serves scans over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/dataquality/internal/config"
	"github.com/JonMunkholm/dataquality/internal/core"
	"github.com/JonMunkholm/dataquality/internal/metrics"
	"github.com/JonMunkholm/dataquality/internal/reference"
	"github.com/JonMunkholm/dataquality/internal/web/middleware"
)

// Server is the HTTP scan surface.
type Server struct {
	cfg         *config.Config
	states      *reference.StateDirectory
	zips        *reference.ZipDirectory
	phoneFormat core.PhoneFormat
	limiter     *core.ScanLimiter
	metrics     *metrics.Metrics
	rateLimiter *rateLimiter
	router      *chi.Mux
	server      *http.Server
}

// NewServer creates a Server over loaded reference data. m may be nil.
func NewServer(cfg *config.Config, states *reference.StateDirectory, zips *reference.ZipDirectory, m *metrics.Metrics) (*Server, error) {
	format, err := core.ParsePhoneFormat(cfg.Scan.PhoneFormat)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		states:      states,
		zips:        zips,
		phoneFormat: format,
		limiter:     core.NewScanLimiter(cfg.Scan.MaxConcurrent, cfg.Scan.MaxWaitTime),
		metrics:     m,
		router:      chi.NewRouter(),
	}
	if cfg.Security.RateLimit > 0 {
		s.rateLimiter = newRateLimiter(cfg.Security.RateLimit, cfg.Security.RateWindow)
		go s.rateLimiter.run()
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		if s.rateLimiter != nil {
			r.Use(s.rateLimiter.middleware)
		}
		r.Use(middleware.APIKeyAuth(s.cfg.Security))

		r.Post("/scan", s.handleScan)
		r.Post("/clean", s.handleClean)
		r.Get("/reference/states", s.handleStates)
	})
}

// Start listens on the configured address until Shutdown. It returns nil
// after a clean shutdown.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, then waits for running scans.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if err := s.limiter.WaitForDrain(ctx); err != nil {
		return fmt.Errorf("waiting for scans: %w", err)
	}
	return nil
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		// Reports carry PII.
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
