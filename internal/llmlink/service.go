// Package llmlink is the boundary between the request pipeline and the
// external completion provider. It owns prompt construction, provider
// invocation, and shape validation of whatever the model sends back.
//
// Failures are classified into two distinct kinds: transport failures
// (network, timeout, non-2xx) mean our path to the provider broke;
// contract failures mean the provider answered with content that does not
// satisfy the response shape. The orchestrator never caches either.
package llmlink

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/adlens/adlens/internal/core"
	apperrors "github.com/adlens/adlens/internal/errors"
	"github.com/adlens/adlens/internal/llmlink/driver"
	"github.com/adlens/adlens/internal/llmlink/prompt"
)

// Service invokes the completion provider for both endpoints. Temperatures
// are product tuning constants: generation wants variety, analysis wants
// consistency. Both are injected, never hardwired into the transport.
type Service struct {
	Driver              driver.Driver
	Model               string
	GenTemperature      float64
	AnalysisTemperature float64
	MaxTokens           int
	Clock               func() time.Time
}

// GenerateAds asks the provider for ad variations and validates the shape.
func (s *Service) GenerateAds(ctx context.Context, req *core.AdGenerationRequest) (*core.GenerationResult, error) {
	resp, err := s.complete(ctx, prompt.GenerationMessages(req), s.GenTemperature)
	if err != nil {
		return nil, err
	}

	var result core.GenerationResult
	if err := json.Unmarshal(extractJSON(resp.Text), &result); err != nil {
		return nil, &apperrors.ProviderContractError{Provider: s.Driver.Name(), Reason: "response is not valid JSON", Err: err}
	}
	if len(result.Ads) == 0 {
		return nil, &apperrors.ProviderContractError{Provider: s.Driver.Name(), Reason: "response missing ads"}
	}
	for i := range result.Ads {
		ad := &result.Ads[i]
		if strings.TrimSpace(ad.Headline) == "" || strings.TrimSpace(ad.PrimaryText) == "" {
			return nil, &apperrors.ProviderContractError{Provider: s.Driver.Name(), Reason: "ad variation missing headline or primaryText"}
		}
	}
	if resp.Usage != nil {
		result.Tokens = resp.Usage.TotalTokens
	}

	return &result, nil
}

// AnalyzeAd asks the provider to grade a submitted ad and validates the
// mandatory fields.
func (s *Service) AnalyzeAd(ctx context.Context, req *core.AdInspectionRequest) (*core.AnalysisResult, error) {
	resp, err := s.complete(ctx, prompt.InspectionMessages(req), s.AnalysisTemperature)
	if err != nil {
		return nil, err
	}

	var result core.AnalysisResult
	if err := json.Unmarshal(extractJSON(resp.Text), &result); err != nil {
		return nil, &apperrors.ProviderContractError{Provider: s.Driver.Name(), Reason: "response is not valid JSON", Err: err}
	}
	if strings.TrimSpace(result.Grade) == "" || len(result.Suggestions) == 0 {
		return nil, &apperrors.ProviderContractError{Provider: s.Driver.Name(), Reason: "response missing grade or suggestions"}
	}
	if resp.Usage != nil {
		result.Tokens = resp.Usage.TotalTokens
	}
	analyzedAt := s.now()
	result.AnalyzedAt = &analyzedAt

	return &result, nil
}

func (s *Service) complete(ctx context.Context, messages []driver.Message, temperature float64) (*driver.Response, error) {
	maxTokens := s.MaxTokens
	req := &driver.Request{
		Model:          s.Model,
		Messages:       messages,
		ResponseFormat: &driver.ResponseFormat{Type: "json_object"},
		Temperature:    &temperature,
	}
	if maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}

	resp, err := s.Driver.Complete(ctx, req)
	if err != nil {
		return nil, &apperrors.ProviderTransportError{Provider: s.Driver.Name(), Err: err}
	}
	if strings.TrimSpace(resp.Text) == "" {
		return nil, &apperrors.ProviderContractError{Provider: s.Driver.Name(), Reason: "empty completion"}
	}
	return resp, nil
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// extractJSON strips markdown code fences some models wrap around JSON
// output despite json_object mode.
func extractJSON(text string) []byte {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return []byte(trimmed)
}
