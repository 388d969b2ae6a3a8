package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/adlens/adlens/internal/errors"
	"github.com/adlens/adlens/internal/server/middleware"
)

// validationResponse is the 400 body.
type validationResponse struct {
	Error  string                 `json:"error"`
	Issues []apperrors.FieldIssue `json:"issues"`
}

// rateLimitResponse is the 429 body.
type rateLimitResponse struct {
	Error      string `json:"error"`
	Reset      string `json:"reset"`
	UpgradeURL string `json:"upgradeUrl"`
}

// genericErrorResponse is the 5xx (and 404/405) body. Callers get a stable
// code and a generic message; diagnostic detail stays in the server logs.
type genericErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondError is the single place error kinds become HTTP responses.
// Expected errors (validation, rate limit) are user-facing and unlogged
// beyond metrics; provider and store failures are logged with context and
// surfaced as generic messages.
func (api *API) RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.Code(err)
	status := apperrors.HTTPStatus(code)

	switch code {
	case apperrors.CodeMalformedBody:
		writeJSON(w, status, validationResponse{
			Error: "Invalid JSON body",
			Issues: []apperrors.FieldIssue{
				{Path: "(body)", Message: "request body must be valid JSON"},
			},
		})
		return

	case apperrors.CodeValidationFailed:
		var invalid *apperrors.ValidationError
		issues := []apperrors.FieldIssue{}
		if errors.As(err, &invalid) {
			issues = invalid.Issues
		}
		writeJSON(w, status, validationResponse{Error: "Validation failed", Issues: issues})
		return

	case apperrors.CodeRateLimited:
		var limited *apperrors.RateLimitError
		reset := time.Now().UTC()
		if errors.As(err, &limited) {
			reset = limited.ResetAt.UTC()
			if api.Metrics != nil {
				api.Metrics.RateLimitRejections.WithLabelValues(limited.Route).Inc()
			}
		}
		writeJSON(w, status, rateLimitResponse{
			Error:      "Free limit reached, please try again later.",
			Reset:      reset.Format(time.RFC3339),
			UpgradeURL: api.UpgradeURL,
		})
		return
	}

	api.logFailure(r, code, err)
	writeJSON(w, status, genericErrorResponse{
		Error: "Something went wrong, please try again.",
		Code:  code,
	})
}

func (api *API) logFailure(r *http.Request, code string, err error) {
	if api.Metrics != nil {
		switch code {
		case apperrors.CodeProviderTransport:
			api.Metrics.ProviderFailures.WithLabelValues("transport").Inc()
		case apperrors.CodeProviderContract:
			api.Metrics.ProviderFailures.WithLabelValues("contract").Inc()
		}
	}

	if api.Logger == nil {
		return
	}
	api.Logger.Error("request failed",
		zap.String("code", code),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Error(err))
}

// NotFound and MethodNotAllowed route chi's fallthrough cases through the
// same response shape as everything else.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, genericErrorResponse{
		Error: "The requested resource was not found",
		Code:  apperrors.CodeNotFound,
	})
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, genericErrorResponse{
		Error: "The requested method is not allowed for this resource",
		Code:  apperrors.CodeMethodNotAllowed,
	})
}
