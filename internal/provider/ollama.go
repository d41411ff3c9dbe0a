package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaProvider implements Embedder and Generator against a local or
// remote Ollama server.
type OllamaProvider struct {
	client     *api.Client
	model      string
	embedModel string
	dimensions int
}

// NewOllamaProvider creates a provider. When host is empty the client is
// built from the environment (OLLAMA_HOST, defaulting to localhost:11434).
func NewOllamaProvider(host, model, embedModel string, dimensions int) (*OllamaProvider, error) {
	if model == "" {
		model = "llama3.2"
	}
	if embedModel == "" {
		embedModel = "nomic-embed-text"
	}
	if dimensions <= 0 {
		dimensions = 768
	}

	var client *api.Client
	if host == "" {
		c, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		client = c
	} else {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host: %w", err)
		}
		client = api.NewClient(u, http.DefaultClient)
	}
	return &OllamaProvider{
		client:     client,
		model:      model,
		embedModel: embedModel,
		dimensions: dimensions,
	}, nil
}

// Name identifies the provider.
func (p *OllamaProvider) Name() string { return "ollama/" + p.model }

// Generate runs a non-streaming completion and returns the full response text.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: &stream,
	}
	var sb strings.Builder
	err := p.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return sb.String(), nil
}

// Embed returns the embedding for a single text.
func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("ollama embed: empty response")
	}
	return embeddings[0], nil
}

// EmbedBatch embeds all texts in one request.
func (p *OllamaProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := p.client.Embed(ctx, &api.EmbedRequest{
		Model: p.embedModel,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama embed: got %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}

// Dimensions returns the configured embedding dimension.
func (p *OllamaProvider) Dimensions() int { return p.dimensions }

// Close is a no-op; the underlying HTTP client needs no teardown.
func (p *OllamaProvider) Close() error { return nil }
