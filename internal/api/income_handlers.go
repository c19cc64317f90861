package api

import (
	"net/http"

	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/money"
)

// incomeRequest carries the full set of mutable income fields. Updates are
// whole-record replacement: omitting source clears it.
type incomeRequest struct {
	Amount       money.Cents `json:"amount"`
	Source       *string     `json:"source"`
	ReceivedDate models.Date `json:"received_date"`
}

func (s *Server) incomeFromRequest(r *http.Request) (*models.Income, string) {
	var req incomeRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err.Error()
	}
	if req.ReceivedDate.IsZero() {
		return nil, "received_date is required"
	}
	if err := s.checkAmount(req.Amount); err != nil {
		return nil, err.Error()
	}
	return &models.Income{
		UserID:       middleware.GetUserID(r.Context()),
		Amount:       req.Amount,
		Source:       req.Source,
		ReceivedDate: req.ReceivedDate,
	}, ""
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	income, msg := s.incomeFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.store.CreateIncome(r.Context(), income); err != nil {
		respondStorageError(w, err, "income")
		return
	}
	respondJSON(w, http.StatusCreated, income)
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := s.store.ListIncomes(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondStorageError(w, err, "income")
		return
	}
	respondJSON(w, http.StatusOK, incomes)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	income, msg := s.incomeFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := s.store.UpdateIncome(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), income)
	if err != nil {
		respondStorageError(w, err, "income")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteIncome(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err, "income")
		return
	}
	respondJSON(w, http.StatusOK, deleted)
}
