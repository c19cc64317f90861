package api

import (
	"log/slog"
	"net/http"

	"github.com/finledger/finledger/internal/middleware"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.aggregator.Summarize(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		slog.Error("Failed to compute summary", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
