package handlers

import (
	"context"
	"net/http"

	"github.com/adlens/adlens/internal/core"
	"github.com/adlens/adlens/internal/core/engine"
	apperrors "github.com/adlens/adlens/internal/errors"
)

// GenerationResponse is the 200 body for POST /generate.
type GenerationResponse struct {
	Ads  []core.AdVariation `json:"ads"`
	Meta Meta               `json:"meta"`
}

// Generate handles POST /generate.
func (api *API) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	decision, err := api.Limiter.Check(ctx, core.RouteGenerate, ClientKey(r))
	if err != nil {
		api.RespondError(w, r, err)
		return
	}
	if !decision.Allowed {
		api.RespondError(w, r, &apperrors.RateLimitError{Route: string(core.RouteGenerate), ResetAt: decision.ResetAt})
		return
	}

	body, err := readBody(r)
	if err != nil {
		api.RespondError(w, r, &apperrors.MalformedBodyError{Err: err})
		return
	}

	req, err := api.Validator.GenerationRequest(body)
	if err != nil {
		api.RespondError(w, r, err)
		return
	}

	key, err := core.DeriveCacheKey(core.NamespaceGeneration, req)
	if err != nil {
		api.RespondError(w, r, err)
		return
	}

	result, state, err := engine.Resolve(ctx, api.GenCache, key, func(ctx context.Context) (*core.GenerationResult, error) {
		return api.Provider.GenerateAds(ctx, req)
	})
	if err != nil {
		api.RespondError(w, r, err)
		return
	}

	if api.Metrics != nil {
		api.Metrics.CacheLookups.WithLabelValues(string(core.RouteGenerate), string(state)).Inc()
	}

	meta := Meta{Cache: state}
	if state == core.CacheMiss {
		meta.Tokens = result.Tokens
	}

	writeJSON(w, http.StatusOK, GenerationResponse{Ads: result.Ads, Meta: meta})
}
