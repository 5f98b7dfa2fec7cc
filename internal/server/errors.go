package server

import (
	"errors"
	"net/http"

	"github.com/hrkey/reference-validator/internal/embedding"
	"github.com/hrkey/reference-validator/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Malformed-input errors map to 400; everything else is a 500.
func HTTPStatus(err error) int {
	var tooShort *pipeline.TextTooShortError
	var embedTooShort *embedding.TextTooShortError
	var mismatch *embedding.DimensionMismatchError

	switch {
	case errors.As(err, &tooShort), errors.As(err, &embedTooShort):
		return http.StatusBadRequest
	case errors.As(err, &mismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
