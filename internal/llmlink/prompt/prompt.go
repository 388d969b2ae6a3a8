// Package prompt builds the chat messages sent to the completion provider.
// Wording here is product tuning; the hard contract is only that the model
// is instructed to answer with the JSON shapes the service validates.
package prompt

import (
	"fmt"
	"strings"

	"github.com/adlens/adlens/internal/core"
	"github.com/adlens/adlens/internal/llmlink/driver"
)

const generationSystem = `You are a senior performance-marketing copywriter.
You write scroll-stopping ad copy grounded in the brief you are given.
Respond with JSON only, no markdown fences, using exactly this shape:
{"ads":[{"headline":string,"primaryText":string,"callToAction":string,"hook":string,"visualIdea":string}]}
Return exactly 3 ad variations. Each variation must take a distinct angle.`

const inspectionSystem = `You are a strict advertising copy reviewer.
Grade the submitted ad and propose concrete improvements.
Respond with JSON only, no markdown fences, using exactly this shape:
{"grade":string,"scores":{"hook":int,"clarity":int,"persuasion":int,"ctaStrength":int},"strengths":[string],"suggestions":[string],"rewrittenAd":{"headline":string,"body":string,"cta":string}}
Grades are letter grades from A+ to F. Scores are integers from 0 to 10.
Always include at least two suggestions.`

// GenerationMessages renders the brief for the generation endpoint.
func GenerationMessages(req *core.AdGenerationRequest) []driver.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Target audience: %s\n", req.TargetAudience)
	fmt.Fprintf(&b, "Campaign goal: %s\n", req.Goal)
	fmt.Fprintf(&b, "Unique selling point: %s\n", req.UniqueSellingPoint)
	fmt.Fprintf(&b, "Context: %s\n", req.ContextDescription)
	fmt.Fprintf(&b, "Brand voice: %s\n", req.BrandVoice)
	fmt.Fprintf(&b, "Key emotion to evoke: %s\n", req.KeyEmotion)
	if req.Competitors != "" {
		fmt.Fprintf(&b, "Competitors to differentiate from: %s\n", req.Competitors)
	}
	fmt.Fprintf(&b, "Ad format: %s\n", req.AdFormat)
	fmt.Fprintf(&b, "Industry: %s\n", req.Industry)
	fmt.Fprintf(&b, "Preferred call to action: %s\n", req.PreferredCTA)
	fmt.Fprintf(&b, "Visual direction: %s\n", req.VisualDirection)

	return []driver.Message{
		{Role: "system", Content: generationSystem},
		{Role: "user", Content: b.String()},
	}
}

// InspectionMessages renders the submitted ad for the inspection endpoint.
func InspectionMessages(req *core.AdInspectionRequest) []driver.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Headline: %s\n", req.Headline)
	fmt.Fprintf(&b, "Body: %s\n", req.Body)
	fmt.Fprintf(&b, "Call to action: %s\n", req.CTA)
	fmt.Fprintf(&b, "Offer: %s\n", req.OfferDescription)
	if req.WebsiteOrBrand != "" {
		fmt.Fprintf(&b, "Website or brand: %s\n", req.WebsiteOrBrand)
	}
	fmt.Fprintf(&b, "Ad type: %s\n", req.AdType)
	fmt.Fprintf(&b, "Industry: %s\n", req.Industry)

	return []driver.Message{
		{Role: "system", Content: inspectionSystem},
		{Role: "user", Content: b.String()},
	}
}
