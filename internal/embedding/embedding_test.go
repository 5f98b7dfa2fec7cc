package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingProvider always errors, simulating an unreachable external service.
type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) Embed(context.Context, string) ([]float64, error) {
	return nil, fmt.Errorf("connection refused")
}

// capturingProvider records the text it was asked to embed.
type capturingProvider struct {
	lastText string
}

func (p *capturingProvider) Name() string { return "capturing" }
func (p *capturingProvider) Embed(_ context.Context, text string) ([]float64, error) {
	p.lastText = text
	return []float64{1, 0, 0}, nil
}

func TestEmbed_TextTooShort(t *testing.T) {
	g := NewGenerator(nil)

	_, err := g.Embed(context.Background(), "short")

	var tooShort *TextTooShortError
	require.ErrorAs(t, err, &tooShort)
	assert.Equal(t, 5, tooShort.Length)
}

func TestEmbed_OfflineDeterministic(t *testing.T) {
	g := NewGenerator(nil)

	first, err := g.Embed(context.Background(), "the same narrative text")
	require.NoError(t, err)
	second, err := g.Embed(context.Background(), "the same narrative text")
	require.NoError(t, err)

	assert.Len(t, first, Dimensions)
	assert.Equal(t, first, second, "offline fallback must be reproducible")

	other, err := g.Embed(context.Background(), "a different narrative text")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestEmbed_FallsBackOnProviderFailure(t *testing.T) {
	g := NewGenerator(failingProvider{})

	vector, err := g.Embed(context.Background(), "a narrative long enough to embed")

	require.NoError(t, err)
	assert.Len(t, vector, Dimensions)
}

func TestEmbed_NoFallbackSurfacesProviderError(t *testing.T) {
	g := NewGenerator(failingProvider{}, WithoutFallback())

	_, err := g.Embed(context.Background(), "a narrative long enough to embed")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "failing", provErr.Provider)
}

func TestEmbed_TruncatesOversizedInput(t *testing.T) {
	p := &capturingProvider{}
	g := NewGenerator(p)

	long := strings.Repeat("a", maxInputTokens*charsPerToken+500)
	_, err := g.Embed(context.Background(), long)

	require.NoError(t, err)
	assert.Len(t, p.lastText, maxInputTokens*charsPerToken)
}

func TestAttempt_FoldsErrorIntoResult(t *testing.T) {
	g := NewGenerator(failingProvider{}, WithoutFallback())

	res := g.Attempt(context.Background(), "a narrative long enough to embed")

	assert.False(t, res.Available())
	assert.Error(t, res.Err)

	res = NewGenerator(nil).Attempt(context.Background(), "a narrative long enough to embed")
	assert.True(t, res.Available())
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-3, 1, 2}

	sim, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sim, -1.0)
	assert.LessOrEqual(t, sim, 1.0)
}

func TestCosineSimilarity_Symmetry(t *testing.T) {
	a := []float64{0.5, -1.5, 2}
	b := []float64{1, 1, 1}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestCosineSimilarity_SelfSimilarityIsOne(t *testing.T) {
	a := []float64{0.2, -0.7, 1.3, 4}

	sim, err := CosineSimilarity(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-12)
}

func TestCosineSimilarity_OppositeVectors(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-1, -2, -3}

	sim, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-12)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})

	var mismatch *DimensionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.LenA)
	assert.Equal(t, 3, mismatch.LenB)
}

func TestCosineSimilarity_ZeroNorm(t *testing.T) {
	sim, err := CosineSimilarity([]float64{0, 0, 0}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &ProviderError{Provider: "gemini", Cause: cause}
	assert.True(t, errors.Is(err, cause))
}
