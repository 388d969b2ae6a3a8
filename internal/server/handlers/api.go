// Package handlers contains the HTTP handlers for the API surface. The
// two ad endpoints share one pipeline: client key extraction, admission
// control, validation, then cache-or-compute against the provider.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/adlens/adlens/internal/core"
	"github.com/adlens/adlens/internal/core/engine"
	"github.com/adlens/adlens/internal/observability"
)

// maxBodyBytes caps request bodies; both payloads are small JSON objects.
const maxBodyBytes = 1 << 20

// Provider is the slice of the llmlink service the handlers need.
type Provider interface {
	GenerateAds(ctx context.Context, req *core.AdGenerationRequest) (*core.GenerationResult, error)
	AnalyzeAd(ctx context.Context, req *core.AdInspectionRequest) (*core.AnalysisResult, error)
}

// API bundles the explicitly constructed pipeline components. All state
// lives behind the injected dependencies; the handlers themselves are
// stateless per invocation.
type API struct {
	Validator  *core.Validator
	Limiter    *engine.RateLimiter
	GenCache   *engine.Orchestrator
	InspCache  *engine.Orchestrator
	Provider   Provider
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	UpgradeURL string
}

// Meta is the per-response observability block.
type Meta struct {
	Cache      core.CacheState `json:"cache"`
	Tokens     int             `json:"tokens,omitempty"`
	AnalyzedAt string          `json:"analyzedAt,omitempty"`
}

// ClientKey derives the caller identity used for admission control. The
// RealIP middleware has already folded X-Forwarded-For into RemoteAddr; a
// loopback placeholder stands in when nothing usable is present. Weak,
// trivially spoofable identification, documented as a limitation.
func ClientKey(r *http.Request) string {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}
	host = strings.TrimSpace(host)
	if host == "" {
		host = "127.0.0.1"
	}
	return host
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close() // nolint:errcheck // best-effort cleanup
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
