package llm

import "context"

// Provider is the interface every text-generation backend implements. The
// advisory layer treats any provider error as non-fatal and falls back to
// deterministic rules, so implementations should fail fast, not retry.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Message is the chat-completions message shape shared by the HTTP-backed
// providers.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
