package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/adlens/adlens/internal/core"
	"github.com/adlens/adlens/internal/core/engine"
	apperrors "github.com/adlens/adlens/internal/errors"
)

// InspectionResponse is the 200 body for POST /inspect.
type InspectionResponse struct {
	Analysis core.AnalysisResult `json:"analysis"`
	Meta     Meta                `json:"meta"`
}

// Inspect handles POST /inspect.
func (api *API) Inspect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	decision, err := api.Limiter.Check(ctx, core.RouteInspect, ClientKey(r))
	if err != nil {
		api.RespondError(w, r, err)
		return
	}
	if !decision.Allowed {
		api.RespondError(w, r, &apperrors.RateLimitError{Route: string(core.RouteInspect), ResetAt: decision.ResetAt})
		return
	}

	body, err := readBody(r)
	if err != nil {
		api.RespondError(w, r, &apperrors.MalformedBodyError{Err: err})
		return
	}

	req, err := api.Validator.InspectionRequest(body)
	if err != nil {
		api.RespondError(w, r, err)
		return
	}

	key, err := core.DeriveCacheKey(core.NamespaceInspection, req)
	if err != nil {
		api.RespondError(w, r, err)
		return
	}

	result, state, err := engine.Resolve(ctx, api.InspCache, key, func(ctx context.Context) (*core.AnalysisResult, error) {
		return api.Provider.AnalyzeAd(ctx, req)
	})
	if err != nil {
		api.RespondError(w, r, err)
		return
	}

	if api.Metrics != nil {
		api.Metrics.CacheLookups.WithLabelValues(string(core.RouteInspect), string(state)).Inc()
	}

	// Token and timing detail rides in meta on fresh computes only; the
	// analysis object itself stays identical between miss and hit.
	meta := Meta{Cache: state}
	if state == core.CacheMiss {
		meta.Tokens = result.Tokens
		if result.AnalyzedAt != nil {
			meta.AnalyzedAt = result.AnalyzedAt.UTC().Format(time.RFC3339)
		}
	}

	analysis := *result
	analysis.Tokens = 0
	analysis.AnalyzedAt = nil

	writeJSON(w, http.StatusOK, InspectionResponse{Analysis: analysis, Meta: meta})
}
