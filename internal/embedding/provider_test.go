package embedding

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joescharf/connoisseur/internal/models"
)

func TestEmbed_FallbackDeterministic(t *testing.T) {
	p := New("", "", time.Second)

	first, source := p.Embed(context.Background(), "hello")
	second, _ := p.Embed(context.Background(), "hello")

	assert.Equal(t, models.EmbeddingSourceLocal, source)
	assert.Equal(t, first, second, "same text must yield bit-identical vectors")
	assert.Len(t, first, 5)
	assert.Equal(t, float64('h')/1000.0, first[0])
}

func TestEmbed_FallbackCapsLength(t *testing.T) {
	p := New("", "", time.Second)

	long := strings.Repeat("x", 5000)
	vec, _ := p.Embed(context.Background(), long)
	assert.Len(t, vec, maxLocalChars)
}

func TestEmbed_EmptyText(t *testing.T) {
	p := New("", "", time.Second)

	vec, source := p.Embed(context.Background(), "")
	assert.Empty(t, vec)
	assert.Equal(t, models.EmbeddingSourceLocal, source)
}

func TestEmbed_ServiceFailureFallsThrough(t *testing.T) {
	p := New("sk-test", "", time.Second)
	p.remote = func(context.Context, string) ([]float64, error) {
		return nil, errors.New("429 quota exceeded")
	}

	vec, source := p.Embed(context.Background(), "abc")
	assert.Equal(t, models.EmbeddingSourceLocal, source)
	assert.Len(t, vec, 3)
}

func TestEmbed_ServiceSuccess(t *testing.T) {
	p := New("sk-test", "", time.Second)
	want := []float64{0.1, 0.2, 0.3}
	p.remote = func(context.Context, string) ([]float64, error) {
		return want, nil
	}

	vec, source := p.Embed(context.Background(), "abc")
	assert.Equal(t, models.EmbeddingSourceOpenAI, source)
	assert.Equal(t, want, vec)
}

func TestLocalEncode_MultibyteRunes(t *testing.T) {
	vec := localEncode("héllo")
	assert.Len(t, vec, 5, "counts runes, not bytes")
	assert.Equal(t, float64('é')/1000.0, vec[1])
}
