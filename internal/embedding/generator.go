// Package embedding converts narratives into fixed-length vectors and
// provides the cosine-similarity primitive used by the consistency checker.
package embedding

import (
	"context"
	"log"
	"time"
)

const (
	// Dimensions is the vector length produced by the offline fallback and
	// expected from providers.
	Dimensions = 1536

	// minTextLength is the shortest text worth embedding.
	minTextLength = 10

	// maxInputTokens caps what is sent to a provider; input is truncated at
	// charsPerToken characters per token of capacity before the call.
	maxInputTokens = 8191
	charsPerToken  = 4

	defaultTimeout = 30 * time.Second
)

// Provider converts text into a fixed-length vector. Implementations may be
// remote; any error is treated as "unavailable" by the generator.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Name() string
}

// Result models the outcome of an embedding attempt. A missing vector is a
// degraded mode, not a pipeline failure.
type Result struct {
	Vector []float64
	Err    error
}

// Available reports whether the result carries a usable vector.
func (r Result) Available() bool {
	return r.Err == nil && len(r.Vector) > 0
}

// Generator wraps a provider with input gating, truncation, a timeout and a
// deterministic offline fallback.
type Generator struct {
	provider Provider
	fallback Provider
	timeout  time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout overrides the per-call provider timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithoutFallback disables the offline deterministic fallback; provider
// failures then surface in the Result.
func WithoutFallback() Option {
	return func(g *Generator) { g.fallback = nil }
}

// NewGenerator creates a Generator around the given provider. A nil provider
// means offline-only operation.
func NewGenerator(provider Provider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		fallback: NewOfflineProvider(Dimensions),
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Embed converts text into a vector. It fails with TextTooShortError for
// inputs under the minimum length; provider failures fall back to the
// deterministic offline vector when the fallback is enabled.
func (g *Generator) Embed(ctx context.Context, text string) ([]float64, error) {
	if len(text) < minTextLength {
		return nil, &TextTooShortError{Length: len(text), Min: minTextLength}
	}

	text = truncate(text)

	provider := g.provider
	if provider == nil {
		provider = g.fallback
	}
	if provider == nil {
		return nil, &ProviderError{Provider: "none", Cause: context.Canceled}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	vector, err := provider.Embed(callCtx, text)
	if err == nil {
		return vector, nil
	}

	if g.fallback != nil && provider != g.fallback {
		log.Printf("[WARN] embedding provider %s unavailable, using offline fallback: %v", provider.Name(), err)
		return g.fallback.Embed(ctx, text)
	}

	return nil, &ProviderError{Provider: provider.Name(), Cause: err}
}

// Attempt runs Embed and folds the outcome into a Result for callers that
// treat embedding as optional.
func (g *Generator) Attempt(ctx context.Context, text string) Result {
	vector, err := g.Embed(ctx, text)
	return Result{Vector: vector, Err: err}
}

// truncate caps text at the provider's input capacity.
func truncate(text string) string {
	maxChars := maxInputTokens * charsPerToken
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}
