package pipeline

import (
	"encoding/json"
	"fmt"
)

// TextTooShortError indicates the standardized narrative is below the
// minimum usable length. Fatal for the whole validation call.
type TextTooShortError struct {
	Stage  string
	Length int
	Min    int
}

func (e *TextTooShortError) Error() string {
	return fmt.Sprintf("%s: narrative too short: %d characters (minimum %d)", e.Stage, e.Length, e.Min)
}

// BatchItemError wraps a failure while validating one batch item. Sibling
// items are never affected.
type BatchItemError struct {
	Index int
	Err   error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("batch item %d failed: %v", e.Index, e.Err)
}

func (e *BatchItemError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the wrapped error as its message. error values have no
// exported fields, so the default encoding would produce an empty object.
func (e *BatchItemError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index int    `json:"index"`
		Error string `json:"error"`
	}{Index: e.Index, Error: e.Err.Error()})
}
