package manager

import (
	"errors"
	"net/http"

	"co2d/internal/predictor"
)

// ErrNotReady is returned by serving calls before an artifact set is loaded.
// It is joined with the predictor's not-loaded error for the missing piece.
var ErrNotReady = errors.New("artifacts not loaded")

// IsNotReady reports whether err indicates that no artifact set is loaded
// (return 503).
func IsNotReady(err error) bool {
	return errors.Is(err, ErrNotReady) || predictor.IsNotLoaded(err)
}

// StatusCode maps a serving error to an HTTP status code hint.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsNotReady(err):
		return http.StatusServiceUnavailable
	case predictor.IsMissingField(err):
		return http.StatusBadRequest
	case predictor.IsUnknownCategory(err), predictor.IsInvalidNumeric(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, predictor.ErrUnknownField):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Outcome is a low-cardinality label for err, used by metrics and events.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsNotReady(err):
		return "not_ready"
	case predictor.IsUnknownCategory(err):
		return "unknown_category"
	case predictor.IsInvalidNumeric(err):
		return "invalid_numeric"
	case predictor.IsMissingField(err):
		return "missing_field"
	default:
		return "error"
	}
}
