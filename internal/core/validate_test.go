package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/adlens/adlens/internal/errors"
)

func validGenerationBody() map[string]any {
	return map[string]any{
		"targetAudience":     "Busy moms aged 25 40 yrs",
		"goal":               "Increase signups fast",
		"uniqueSellingPoint": "Only app with live coaching",
		"contextDescription": "We help moms build healthy routines in 10 minutes a day with proven plans.",
		"brandVoice":         "Friendly",
		"keyEmotion":         "Trust",
		"adFormat":           "Single Image",
		"industry":           "Health",
		"preferredCTA":       "Sign Up",
		"visualDirection":    "Lifestyle",
	}
}

func validInspectionBody() map[string]any {
	return map[string]any{
		"headline":         "Get fit in 10 minutes",
		"body":             "Our coaching app builds healthy routines for busy parents with proven daily plans.",
		"cta":              "Sign Up",
		"offerDescription": "Free 14-day trial with a personal coach included from day one.",
		"adType":           "Single Image",
		"industry":         "Health",
	}
}

func marshal(t *testing.T, payload map[string]any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestGenerationRequestValid(t *testing.T) {
	val := NewValidator()

	req, err := val.GenerationRequest(marshal(t, validGenerationBody()))
	require.NoError(t, err)
	require.Equal(t, "Busy moms aged 25 40 yrs", req.TargetAudience)
	require.Equal(t, "Single Image", req.AdFormat)
}

func TestGenerationRequestMissingField(t *testing.T) {
	val := NewValidator()
	body := validGenerationBody()
	delete(body, "targetAudience")

	_, err := val.GenerationRequest(marshal(t, body))

	var invalid *apperrors.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Issues, 1)
	require.Equal(t, "targetAudience", invalid.Issues[0].Path)
}

func TestGenerationRequestBadEnum(t *testing.T) {
	val := NewValidator()
	body := validGenerationBody()
	body["brandVoice"] = "Sarcastic"

	_, err := val.GenerationRequest(marshal(t, body))

	var invalid *apperrors.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "brandVoice", invalid.Issues[0].Path)
	require.Contains(t, invalid.Issues[0].Message, "must be one of")
}

func TestGenerationRequestLengthBounds(t *testing.T) {
	val := NewValidator()
	body := validGenerationBody()
	body["contextDescription"] = "too short"

	_, err := val.GenerationRequest(marshal(t, body))

	var invalid *apperrors.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "contextDescription", invalid.Issues[0].Path)
}

func TestGenerationRequestCollectsAllIssues(t *testing.T) {
	val := NewValidator()
	body := validGenerationBody()
	delete(body, "goal")
	body["industry"] = "Aerospace"

	_, err := val.GenerationRequest(marshal(t, body))

	var invalid *apperrors.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Len(t, invalid.Issues, 2)

	paths := []string{invalid.Issues[0].Path, invalid.Issues[1].Path}
	require.Contains(t, paths, "goal")
	require.Contains(t, paths, "industry")
}

func TestGenerationRequestMalformedJSON(t *testing.T) {
	val := NewValidator()

	_, err := val.GenerationRequest([]byte("{not json"))

	var malformed *apperrors.MalformedBodyError
	require.ErrorAs(t, err, &malformed)

	var invalid *apperrors.ValidationError
	require.False(t, errors.As(err, &invalid), "malformed body must not classify as a validation error")
}

func TestInspectionRequestValid(t *testing.T) {
	val := NewValidator()

	req, err := val.InspectionRequest(marshal(t, validInspectionBody()))
	require.NoError(t, err)
	require.Equal(t, "Get fit in 10 minutes", req.Headline)
	require.Empty(t, req.WebsiteOrBrand)
}

func TestInspectionRequestOptionalFieldBound(t *testing.T) {
	val := NewValidator()
	body := validInspectionBody()
	long := make([]byte, 121)
	for i := range long {
		long[i] = 'a'
	}
	body["websiteOrBrand"] = string(long)

	_, err := val.InspectionRequest(marshal(t, body))

	var invalid *apperrors.ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "websiteOrBrand", invalid.Issues[0].Path)
}
