package embedding

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors, in
// [-1, 1]. Vectors of different lengths yield a DimensionMismatchError; a
// zero-norm vector has no direction, so the result is 0 rather than a
// division by zero.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Guard against floating-point drift outside [-1, 1].
	return math.Max(-1, math.Min(1, sim)), nil
}
