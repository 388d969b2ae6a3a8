package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/adlens/adlens/internal/errors"
)

// Validator checks raw request bodies against the request schemas. It is
// pure and synchronous: no store or provider access, ever.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a validator that reports issues using JSON field
// names rather than Go struct names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// GenerationRequest parses and validates a generation payload.
func (val *Validator) GenerationRequest(body []byte) (*AdGenerationRequest, error) {
	var req AdGenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &apperrors.MalformedBodyError{Err: err}
	}
	if err := val.check(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// InspectionRequest parses and validates an inspection payload.
func (val *Validator) InspectionRequest(body []byte) (*AdInspectionRequest, error) {
	var req AdInspectionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &apperrors.MalformedBodyError{Err: err}
	}
	if err := val.check(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (val *Validator) check(req any) error {
	err := val.v.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &apperrors.MalformedBodyError{Err: err}
	}

	issues := make([]apperrors.FieldIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, apperrors.FieldIssue{
			Path:    fe.Field(),
			Message: issueMessage(fe),
		})
	}
	return &apperrors.ValidationError{Issues: issues}
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), "'", ""))
	default:
		return fmt.Sprintf("failed %s constraint", fe.Tag())
	}
}
