// Package server exposes the health check and the identity-provider webhook.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/rs/cors"
)

const (
	maxRequestSize  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Config holds the server settings.
type Config struct {
	Addr        string
	Version     string
	WebhookRate float64 // requests per second per client IP on /webhooks
}

// Server serves GET / and POST /webhooks.
type Server struct {
	cfg     Config
	webhook http.Handler
	logger  *slog.Logger
}

// New creates a server delegating webhook deliveries to webhook.
func New(cfg Config, webhook http.Handler, logger *slog.Logger) *Server {
	return &Server{cfg: cfg, webhook: webhook, logger: logger}
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("server shutdown failed", "error", err)
		}
	}()

	s.logger.Info("server listening", "addr", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	backend := slogBackend{logger: s.logger}
	router := routegroup.New(http.NewServeMux())

	router.Use(
		cors.AllowAll().Handler,
		rest.RealIP,
		rest.Recoverer(backend),
		rest.Throttle(1000),
		rest.AppInfo("jobboard", "amishk599", s.cfg.Version),
		rest.Ping,
		rest.SizeLimit(maxRequestSize),
		logger.New(logger.Log(backend), logger.Prefix("[DEBUG]")).Handler,
	)

	router.HandleFunc("GET /{$}", s.handleRoot)
	router.With(tollbooth.HTTPMiddleware(s.webhookLimiter())).Handle("POST /webhooks", s.webhook)

	return router
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("API Working"))
}

func (s *Server) webhookLimiter() *limiter.Limiter {
	lmt := tollbooth.NewLimiter(s.cfg.WebhookRate, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetMessageContentType("application/json")
	lmt.SetMessage(`{"success":false,"message":"too many requests"}`)
	return lmt
}

// slogBackend adapts slog to the printf-style logger used by go-pkgz/rest.
type slogBackend struct {
	logger *slog.Logger
}

func (b slogBackend) Logf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	switch {
	case strings.HasPrefix(msg, "[DEBUG]"):
		b.logger.Debug(strings.TrimSpace(strings.TrimPrefix(msg, "[DEBUG]")))
	case strings.HasPrefix(msg, "[WARN]"):
		b.logger.Warn(strings.TrimSpace(strings.TrimPrefix(msg, "[WARN]")))
	case strings.HasPrefix(msg, "[ERROR]"):
		b.logger.Error(strings.TrimSpace(strings.TrimPrefix(msg, "[ERROR]")))
	default:
		b.logger.Info(msg)
	}
}
