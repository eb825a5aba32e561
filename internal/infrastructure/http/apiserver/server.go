// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/alchemorsel/menugen/internal/infrastructure/config"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/menugen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/menugen/internal/infrastructure/monitoring"
	"github.com/alchemorsel/menugen/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server represents the menu API HTTP server
type Server struct {
	config         *config.Config
	logger         *zap.Logger
	server         *http.Server
	router         *chi.Mux
	menuHandlers   *handlers.MenuHandlers
	middleware     *middleware.Middleware
	metrics        *monitoring.MetricsCollector
	health         *healthcheck.HealthCheck
	openAPIHandler *OpenAPIHandler
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	menuHandlers *handlers.MenuHandlers,
	mw *middleware.Middleware,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:         cfg,
		logger:         log.Named("api-server"),
		menuHandlers:   menuHandlers,
		middleware:     mw,
		metrics:        metrics,
		health:         health,
		openAPIHandler: NewOpenAPIHandler(log),
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:           net.JoinHostPort(cfg.Server.Host, fmt.Sprint(cfg.Server.Port)),
		Handler:        s.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(s.middleware.RequestID)
	r.Use(s.middleware.Tracing)
	r.Use(s.middleware.Logger)
	r.Use(s.middleware.Recovery)
	if s.config.Monitoring.EnableMetrics {
		r.Use(s.metrics.HTTPMiddleware)
	}
	r.Use(s.middleware.Security)
	r.Use(s.middleware.CORS)
	if s.config.Server.EnableCompression {
		r.Use(s.middleware.Compression)
	}
	if s.config.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	}

	// Operational endpoints are not rate limited
	r.Method(http.MethodGet, s.config.Monitoring.HealthCheckPath, s.health.Handler())
	r.Method(http.MethodGet, s.config.Monitoring.HealthCheckPath+"/live", s.health.LivenessHandler())
	if s.config.Monitoring.EnableMetrics {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/openapi.yaml", s.openAPIHandler.ServeOpenAPISpec)
		r.Group(func(r chi.Router) {
			r.Use(s.middleware.RateLimit)
			s.menuHandlers.Routes(r)
		})
	})

	return r
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Server returns the underlying HTTP server instance
func (s *Server) Server() *http.Server {
	return s.server
}

// Start starts the HTTP server and blocks until it stops.
// A graceful Shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("Starting menu API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down menu API server...")
	return s.server.Shutdown(ctx)
}
