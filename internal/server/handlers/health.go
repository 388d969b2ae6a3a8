package handlers

import (
	"context"
	"net/http"
	"time"

	apperrors "github.com/adlens/adlens/internal/errors"
)

// HealthResponse represents the aggregate health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ProbeResponse represents an individual probe response.
type ProbeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthChecker is implemented by health-checkable components.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

func (f HealthCheckFunc) CheckHealth(ctx context.Context) error { return f(ctx) }

// HealthManager aggregates registered health checks.
type HealthManager struct {
	checkers map[string]HealthChecker
	version  string
}

// NewHealthManager creates a health manager.
func NewHealthManager(version string) *HealthManager {
	return &HealthManager{
		checkers: make(map[string]HealthChecker),
		version:  version,
	}
}

// RegisterChecker registers a named health checker.
func (hm *HealthManager) RegisterChecker(name string, checker HealthChecker) {
	hm.checkers[name] = checker
}

func (hm *HealthManager) runHealthChecks(ctx context.Context) map[string]string {
	checks := make(map[string]string)
	for name, checker := range hm.checkers {
		select {
		case <-ctx.Done():
			checks[name] = "timeout"
			return checks
		default:
			if err := checker.CheckHealth(ctx); err != nil {
				checks[name] = "unhealthy"
			} else {
				checks[name] = "healthy"
			}
		}
	}
	return checks
}

func (hm *HealthManager) overallStatus(checks map[string]string) string {
	degraded := false
	for _, status := range checks {
		if status == "unhealthy" {
			return "unhealthy"
		}
		if status == "timeout" {
			degraded = true
		}
	}
	if degraded {
		return "degraded"
	}
	return "healthy"
}

// HealthHandler handles aggregate health check requests.
func (hm *HealthManager) HealthHandler(w http.ResponseWriter, r *http.Request) {
	checkCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := hm.runHealthChecks(checkCtx)
	status := hm.overallStatus(checks)

	if status == "unhealthy" {
		writeJSON(w, http.StatusServiceUnavailable, genericErrorResponse{
			Error: "aggregate health check failed",
			Code:  apperrors.CodeServiceUnavailable,
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Version:   hm.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// LivenessHandler reports process liveness; it never consults dependencies.
func (hm *HealthManager) LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ProbeResponse{Status: "alive", Timestamp: time.Now().UTC()})
}

// ReadinessHandler reports whether dependencies are reachable.
func (hm *HealthManager) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	checkCtx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := hm.runHealthChecks(checkCtx)
	if hm.overallStatus(checks) == "unhealthy" {
		writeJSON(w, http.StatusServiceUnavailable, ProbeResponse{Status: "not ready", Timestamp: time.Now().UTC()})
		return
	}
	writeJSON(w, http.StatusOK, ProbeResponse{Status: "ready", Timestamp: time.Now().UTC()})
}
