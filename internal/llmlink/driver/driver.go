// Package driver defines the provider-agnostic interface for chat
// completion providers.
package driver

import "context"

// Driver is implemented by each completion provider.
type Driver interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req *Request) (*Response, error)
	// Name returns the driver identifier (e.g., "openai").
	Name() string
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the expected response format.
type ResponseFormat struct {
	Type string `json:"type"` // "text", "json_object"
}

// Usage contains token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Request is a provider-agnostic completion request.
type Request struct {
	Model          string
	Messages       []Message
	ResponseFormat *ResponseFormat
	Temperature    *float64
	MaxTokens      *int
}

// Response is a provider-agnostic completion response.
type Response struct {
	Text         string
	FinishReason string
	Usage        *Usage
}
