// Package errors defines the application error taxonomy. Every failure a
// handler can surface is one of the types below, and the HTTP layer maps
// error kinds to status codes in exactly one place (HTTPStatus), so
// transport concerns never leak into the pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Stable error codes returned in 5xx bodies and used as the status-mapping
// discriminator.
const (
	CodeMalformedBody      = "MALFORMED_BODY"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeProviderTransport  = "PROVIDER_UNREACHABLE"
	CodeProviderContract   = "PROVIDER_CONTRACT_VIOLATION"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// FieldIssue points at a single offending request field.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError reports one or more schema-constraint violations.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d issue(s)", len(e.Issues))
}

// MalformedBodyError reports a body that did not parse as JSON at all.
// Kept distinct from ValidationError so callers can tell "not JSON" apart
// from "JSON with bad fields".
type MalformedBodyError struct {
	Err error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.Err)
}

func (e *MalformedBodyError) Unwrap() error { return e.Err }

// RateLimitError reports an admission-control rejection.
type RateLimitError struct {
	Route   string
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, resets at %s", e.Route, e.ResetAt.Format(time.RFC3339))
}

// ProviderTransportError reports a network or timeout failure talking to
// the model provider. This is an infrastructure failure on our side of the
// contract.
type ProviderTransportError struct {
	Provider string
	Err      error
}

func (e *ProviderTransportError) Error() string {
	return fmt.Sprintf("provider %s unreachable: %v", e.Provider, e.Err)
}

func (e *ProviderTransportError) Unwrap() error { return e.Err }

// ProviderContractError reports that the provider answered, but with
// content that failed to parse or lacked required fields. This is a
// data-contract failure from an untrusted upstream, logged distinctly from
// transport failures and never cached.
type ProviderContractError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ProviderContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s contract violation: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("provider %s contract violation: %s", e.Provider, e.Reason)
}

func (e *ProviderContractError) Unwrap() error { return e.Err }

// StoreError reports a backing-store failure. The limiter path is
// fail-closed and surfaces these; the cache path degrades instead.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Code classifies any error into a stable code.
func Code(err error) string {
	var (
		malformed *MalformedBodyError
		invalid   *ValidationError
		limited   *RateLimitError
		transport *ProviderTransportError
		contract  *ProviderContractError
		store     *StoreError
	)
	switch {
	case errors.As(err, &malformed):
		return CodeMalformedBody
	case errors.As(err, &invalid):
		return CodeValidationFailed
	case errors.As(err, &limited):
		return CodeRateLimited
	case errors.As(err, &transport):
		return CodeProviderTransport
	case errors.As(err, &contract):
		return CodeProviderContract
	case errors.As(err, &store):
		return CodeStoreUnavailable
	default:
		return CodeInternal
	}
}

// HTTPStatus resolves the HTTP status for an error code. This is the single
// code-to-status mapping in the repository.
func HTTPStatus(code string) int {
	switch code {
	case CodeMalformedBody, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
