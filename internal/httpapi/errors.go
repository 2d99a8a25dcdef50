package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"co2d/internal/manager"
	"co2d/internal/predictor"
	"co2d/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return manager.StatusCode(err)
}

// writeError writes err as a JSON payload, naming the offending input field
// when there is one, and returns the status written.
func writeError(w http.ResponseWriter, err error) int {
	status := statusFor(err)
	field := ""
	if f, ok := predictor.FieldOf(err); ok {
		field = WireName(f)
	}
	writeJSONError(w, status, err.Error(), field)
	return status
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status, Field: field})
}
