// Package provider defines the embedding/generation collaborator contracts
// and reference implementations. The engine never talks to a model API
// directly; it goes through these interfaces.
package provider

import "context"

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// Generator produces text completions for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider for response configuration echoes.
	Name() string
}
