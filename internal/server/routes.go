package server

import "github.com/adlens/adlens/internal/server/handlers"

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(deps Deps) {
	s.router.Post("/generate", deps.API.Generate)
	s.router.Post("/inspect", deps.API.Inspect)

	s.router.Get("/health", deps.Health.HealthHandler)
	s.router.Get("/health/live", deps.Health.LivenessHandler)
	s.router.Get("/health/ready", deps.Health.ReadinessHandler)

	s.router.Get("/version", handlers.VersionHandler(deps.Version))

	if deps.Metrics != nil {
		s.router.Get("/metrics", deps.Metrics.Handler().ServeHTTP)
	}
}
