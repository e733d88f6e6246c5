// Package llm talks to the generative-model service consumed by the
// extraction pipeline. The service is an opaque request/response
// capability: plain generation, streamed generation, and generation
// over an attached image. Errors are classified by substring so callers
// can decide on model-substitution fallbacks.
package llm

import "context"

// Request is a single generation request.
type Request struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// Client is the interface for generative-model interactions.
type Client interface {
	// Generate sends a prompt and returns the full response text.
	Generate(ctx context.Context, req Request) (string, error)

	// GenerateStream sends a prompt and delivers response fragments to
	// emit as they arrive. A non-nil error from emit aborts the stream.
	GenerateStream(ctx context.Context, req Request, emit func(fragment string) error) error

	// GenerateWithImage sends a prompt together with an inline image.
	GenerateWithImage(ctx context.Context, req Request, image []byte, mimeType string) (string, error)
}

// Config configures a client endpoint.
type Config struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"`
}
