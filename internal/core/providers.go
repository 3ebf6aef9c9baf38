// ABOUTME: Provider ports consumed by the core engine
// ABOUTME: Satisfied by internal/llm's OpenAI client and by test stubs
package core

import "context"

// EmbeddingProvider maps text to fixed-dimension vectors. Used at both
// index time and query time; ModelID identifies the model so mismatched
// index/query vectors can be rejected.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	ModelID() string
}

// CompletionProvider issues a single chat completion and returns the raw
// response content. Retry policy lives behind this boundary and is bounded.
type CompletionProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
