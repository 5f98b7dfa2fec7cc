package embedding

import "fmt"

// TextTooShortError indicates the input text is below the minimum usable
// length for embedding.
type TextTooShortError struct {
	Length int
	Min    int
}

func (e *TextTooShortError) Error() string {
	return fmt.Sprintf("text too short for embedding: %d characters (minimum %d)", e.Length, e.Min)
}

// DimensionMismatchError indicates two vectors of different lengths were
// compared. This is a programming or data error, not a business condition,
// and is always propagated.
type DimensionMismatchError struct {
	LenA int
	LenB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: %d vs %d", e.LenA, e.LenB)
}

// ProviderError wraps a failure of the external embedding provider. It is
// non-fatal for the validation pipeline; callers degrade to the offline
// fallback or to no embedding at all.
type ProviderError struct {
	Provider string
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s failed: %v", e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
