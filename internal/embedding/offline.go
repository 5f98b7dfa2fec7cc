package embedding

import (
	"context"
	"hash/fnv"
)

// OfflineProvider generates deterministic hash-seeded vectors. The vectors
// carry no semantic meaning; they exist so the pipeline stays functional and
// repeatable without a real embedding model. Never use them to claim real
// similarity.
type OfflineProvider struct {
	dims int
}

// NewOfflineProvider creates an offline provider producing vectors of the
// given length.
func NewOfflineProvider(dims int) *OfflineProvider {
	if dims <= 0 {
		dims = Dimensions
	}
	return &OfflineProvider{dims: dims}
}

// Name identifies the provider in logs.
func (p *OfflineProvider) Name() string { return "offline-deterministic" }

// Embed returns the same vector for the same text, always.
func (p *OfflineProvider) Embed(_ context.Context, text string) ([]float64, error) {
	h := fnv.New64a()
	h.Write([]byte(text)) //nolint:errcheck // fnv never fails
	state := h.Sum64()

	vector := make([]float64, p.dims)
	for i := range vector {
		state = splitmix64(state)
		// Map the top 53 bits onto [-1, 1).
		vector[i] = float64(state>>11)/float64(1<<52) - 1.0
	}
	return vector, nil
}

// splitmix64 advances a 64-bit PRNG state. Chosen for determinism across
// platforms, not for statistical quality.
func splitmix64(state uint64) uint64 {
	state += 0x9E3779B97F4A7C15
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
