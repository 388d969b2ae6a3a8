// Package server wires the chi router, middleware stack, and handlers
// into an http.Server.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/adlens/adlens/internal/config"
	"github.com/adlens/adlens/internal/observability"
	"github.com/adlens/adlens/internal/server/handlers"
	servermw "github.com/adlens/adlens/internal/server/middleware"
)

// Server is the HTTP front-end. All pipeline dependencies arrive through
// Deps; the server owns none of them.
type Server struct {
	router *chi.Mux
	server *http.Server
	cfg    config.ServerConfig
	logger *zap.Logger
}

// Deps are the constructed components the routes need.
type Deps struct {
	API     *handlers.API
	Health  *handlers.HealthManager
	Metrics *observability.Metrics
	Version handlers.VersionInfo
	Logger  *zap.Logger
}

// New creates the HTTP server.
func New(cfg config.ServerConfig, deps Deps) *Server {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(servermw.RequestID)
	r.Use(servermw.RequestLogger(deps.Logger, deps.Metrics))
	r.Use(servermw.Recovery(deps.Logger))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	s := &Server{
		router: r,
		cfg:    cfg,
		logger: deps.Logger,
	}

	s.registerRoutes(deps)

	return s
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	if s.logger != nil {
		s.logger.Info("starting HTTP server", zap.String("addr", addr))
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("shutting down HTTP server")
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing.
func (s *Server) Handler() http.Handler {
	return s.router
}
