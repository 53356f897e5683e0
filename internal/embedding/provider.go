// Package embedding turns a text buffer into a numeric vector. When an
// OpenAI credential is configured the vector comes from the embeddings API;
// otherwise, or on any service failure, a deterministic local encoding is
// used so index entries stay comparable across runs.
package embedding

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/joescharf/connoisseur/internal/models"
)

// maxLocalChars caps the local fallback vector length.
const maxLocalChars = 1024

// Provider produces embeddings. The zero credential form always uses the
// local fallback.
type Provider struct {
	client  openai.Client
	model   openai.EmbeddingModel
	timeout time.Duration
	enabled bool

	// remote is replaceable in tests.
	remote func(ctx context.Context, text string) ([]float64, error)
}

// New returns a Provider. An empty apiKey disables the service tier
// entirely.
func New(apiKey, model string, timeout time.Duration) *Provider {
	p := &Provider{
		model:   openai.EmbeddingModel(model),
		timeout: timeout,
		enabled: apiKey != "",
	}
	if model == "" {
		p.model = openai.EmbeddingModelTextEmbedding3Small
	}
	if p.enabled {
		p.client = openai.NewClient(option.WithAPIKey(apiKey))
	}
	p.remote = p.openaiEmbed
	return p
}

// Embed returns a vector for text and the tier that produced it. It never
// fails: any transport, auth, or quota error from the service silently
// resolves to the local encoding. Empty text yields an empty vector.
func (p *Provider) Embed(ctx context.Context, text string) ([]float64, models.EmbeddingSource) {
	if p.enabled {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		if vec, err := p.remote(ctx, text); err == nil {
			return vec, models.EmbeddingSourceOpenAI
		}
	}
	return localEncode(text), models.EmbeddingSourceLocal
}

func (p *Provider) openaiEmbed(ctx context.Context, text string) ([]float64, error) {
	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: p.model,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data[0].Embedding, nil
}

// localEncode maps each of the first maxLocalChars runes to its code point
// scaled into a small fixed range. Bit-identical for identical text.
func localEncode(text string) []float64 {
	runes := []rune(text)
	if len(runes) > maxLocalChars {
		runes = runes[:maxLocalChars]
	}
	vec := make([]float64, len(runes))
	for i, r := range runes {
		vec[i] = float64(r) / 1000.0
	}
	return vec
}
