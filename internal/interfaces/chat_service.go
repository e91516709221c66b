package interfaces

import "context"

// ChatService handles natural-language chat backed by an LLM.
// Implementations return a deterministic mock response when no
// backend is configured.
type ChatService interface {
	// Chat sends a message and returns the response text.
	Chat(ctx context.Context, message string, chatContext map[string]interface{}) (string, error)

	// GenerateCode builds a test-generation prompt from a requirement
	// description and optional context, then delegates to Chat.
	GenerateCode(ctx context.Context, description string, genContext map[string]interface{}) (string, error)

	// IsConfigured reports whether both an endpoint and a model were supplied.
	IsConfigured() bool
}
