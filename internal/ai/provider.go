package ai

import (
	"context"
)

// Provider generates text for a prompt, hiding one external model API.
// Implementations classify their failures into the application error
// taxonomy (config, rate_limit, invalid_request, transient, unexpected)
// so callers can treat both providers uniformly.
type Provider interface {
	// Generate sends the prompt and returns the model's plain-text reply,
	// trimmed. An empty reply is reported as a transient error.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the human-readable provider name ("Gemini", "OpenRouter").
	Name() string
}
