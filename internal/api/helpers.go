package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/finledger/finledger/internal/money"
	"github.com/finledger/finledger/internal/storage"
)

var errNegativeAmount = errors.New("amount must not be negative")

// errorResponse is the uniform JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStorageError maps storage errors onto HTTP outcomes: missing rows
// are 404, constraint violations 409, anything else a logged 500.
func respondStorageError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, storage.ErrConstraint):
		respondError(w, http.StatusConflict, entity+" conflicts with an existing record")
	default:
		slog.Error("Storage operation failed", "entity", entity, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// checkAmount enforces the configured non-negativity policy.
func (s *Server) checkAmount(amount money.Cents) error {
	if amount.IsNegative() && !s.allowNegative {
		return errNegativeAmount
	}
	return nil
}
