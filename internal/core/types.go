package core

import "time"

// RouteID identifies a rate-limited API route.
type RouteID string

const (
	RouteGenerate RouteID = "generate"
	RouteInspect  RouteID = "inspect"
)

// CacheNamespace prefixes cache keys so the two endpoints share one store
// without sharing a keyspace.
type CacheNamespace string

const (
	NamespaceGeneration CacheNamespace = "adgen"
	NamespaceInspection CacheNamespace = "adinspect"
)

// CacheState reports whether a response was served from the cache.
type CacheState string

const (
	CacheHit  CacheState = "hit"
	CacheMiss CacheState = "miss"
)

// AdGenerationRequest is the validated payload for the generation endpoint.
//
// Field order is load-bearing: cache keys are derived from the canonical
// JSON serialization of this struct, and encoding/json emits struct fields
// in declaration order.
type AdGenerationRequest struct {
	TargetAudience     string `json:"targetAudience" validate:"required,min=2,max=120"`
	Goal               string `json:"goal" validate:"required,min=2,max=120"`
	UniqueSellingPoint string `json:"uniqueSellingPoint" validate:"required,min=2,max=120"`
	ContextDescription string `json:"contextDescription" validate:"required,min=10,max=1000"`
	BrandVoice         string `json:"brandVoice" validate:"required,oneof=Friendly Professional Bold Playful Luxury Witty"`
	KeyEmotion         string `json:"keyEmotion" validate:"required,oneof=Trust Excitement 'Fear of Missing Out' Belonging Relief Aspiration"`
	Competitors        string `json:"competitors,omitempty" validate:"omitempty,max=120"`
	AdFormat           string `json:"adFormat" validate:"required,oneof='Single Image' Carousel Video Story 'Search Ad'"`
	Industry           string `json:"industry" validate:"required,oneof=Health Finance Education E-commerce SaaS 'Food & Beverage' Travel 'Real Estate' Other"`
	PreferredCTA       string `json:"preferredCTA" validate:"required,oneof='Sign Up' 'Learn More' 'Shop Now' 'Get Offer' 'Book Now' Download"`
	VisualDirection    string `json:"visualDirection" validate:"required,oneof=Lifestyle 'Product Close-up' 'Before & After' 'User Generated' Minimalist 'Bold Graphic'"`
}

// AdInspectionRequest is the validated payload for the inspection endpoint.
type AdInspectionRequest struct {
	Headline         string `json:"headline" validate:"required,min=2,max=120"`
	Body             string `json:"body" validate:"required,min=10,max=1000"`
	CTA              string `json:"cta" validate:"required,min=2,max=120"`
	OfferDescription string `json:"offerDescription" validate:"required,min=10,max=1000"`
	WebsiteOrBrand   string `json:"websiteOrBrand,omitempty" validate:"omitempty,max=120"`
	AdType           string `json:"adType" validate:"required,oneof='Single Image' Carousel Video Story 'Search Ad'"`
	Industry         string `json:"industry" validate:"required,oneof=Health Finance Education E-commerce SaaS 'Food & Beverage' Travel 'Real Estate' Other"`
}

// AdVariation is one generated advertisement.
type AdVariation struct {
	Headline     string `json:"headline"`
	PrimaryText  string `json:"primaryText"`
	CallToAction string `json:"callToAction"`
	Hook         string `json:"hook"`
	VisualIdea   string `json:"visualIdea,omitempty"`
}

// GenerationResult is the parsed provider output for the generation endpoint.
type GenerationResult struct {
	Ads    []AdVariation `json:"ads"`
	Tokens int           `json:"tokens,omitempty"`
}

// AnalysisScores breaks the grade down per dimension (0-10).
type AnalysisScores struct {
	Hook        int `json:"hook"`
	Clarity     int `json:"clarity"`
	Persuasion  int `json:"persuasion"`
	CTAStrength int `json:"ctaStrength"`
}

// RewrittenAd is the model's suggested improved version of the submitted ad.
type RewrittenAd struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	CTA      string `json:"cta"`
}

// AnalysisResult is the parsed provider output for the inspection endpoint.
// Grade and Suggestions are mandatory; everything else is best-effort.
type AnalysisResult struct {
	Grade       string          `json:"grade"`
	Scores      *AnalysisScores `json:"scores,omitempty"`
	Strengths   []string        `json:"strengths,omitempty"`
	Suggestions []string        `json:"suggestions"`
	RewrittenAd *RewrittenAd    `json:"rewrittenAd,omitempty"`
	Tokens      int             `json:"tokens,omitempty"`
	AnalyzedAt  *time.Time      `json:"analyzedAt,omitempty"`
}

// RateLimitDecision is the outcome of an admission check. Ephemeral,
// computed per request.
type RateLimitDecision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}
