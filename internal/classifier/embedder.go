// Package classifier turns raw text into a bullying / not-bullying prediction
// by embedding it and feeding the vector to a pretrained linear model.
//
// Embedders and models are loaded once at start and never mutated, so a
// Classifier is safe for concurrent use.
package classifier

import (
	"context"
	"fmt"
)

// Embedder produces a fixed-size vector for a text. Implementations must be
// deterministic for a fixed model and input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Name() string
}

const (
	ProviderHashing = "hashing"
	ProviderOllama  = "ollama"
	ProviderGenAI   = "genai"
)

// EmbedderConfig selects and configures an Embedder.
type EmbedderConfig struct {
	Provider string
	// Dimensions is the vector width for the hashing embedder.
	Dimensions int

	OllamaURL   string
	OllamaModel string

	GenAIAPIKey string
	GenAIModel  string
}

// NewEmbedder builds the embedder named by cfg.Provider.
func NewEmbedder(ctx context.Context, cfg EmbedderConfig) (Embedder, error) {
	switch cfg.Provider {
	case ProviderHashing, "":
		return NewHashingEmbedder(cfg.Dimensions), nil
	case ProviderOllama:
		return NewOllamaEmbedder(cfg.OllamaURL, cfg.OllamaModel), nil
	case ProviderGenAI:
		return NewGenAIEmbedder(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q (use %s, %s or %s)",
			cfg.Provider, ProviderHashing, ProviderOllama, ProviderGenAI)
	}
}
