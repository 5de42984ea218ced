// Package respond writes JSON responses and maps ledger errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/donation-ledger/pkg/ledger"
	"github.com/chris/donation-ledger/pkg/storage"
)

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// StatusOf returns the HTTP status for an operation error.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrOverAllocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes a failed Result for err.
func Error(w http.ResponseWriter, err error) {
	JSON(w, StatusOf(err), ledger.ResultOf(err))
}

// BadRequest writes a failed Result for a malformed request.
func BadRequest(w http.ResponseWriter, format string, args ...any) {
	JSON(w, http.StatusBadRequest, ledger.Result{Error: fmt.Sprintf(format, args...)})
}

// ParamError writes a failed Result for a path or query parameter that could not be bound.
func ParamError(w http.ResponseWriter, r *http.Request, err error) {
	BadRequest(w, "%v", err)
}

// Decode reads a JSON request body into dest, writing a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		BadRequest(w, "Invalid request body: %v", err)
		return false
	}
	return true
}
