package api

import (
	"net/http"

	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/money"
)

// expenseRequest carries the full set of mutable expense fields. Updates are
// whole-record replacement: omitting category_id detaches the expense from
// its category.
type expenseRequest struct {
	Title       string      `json:"title"`
	Amount      money.Cents `json:"amount"`
	CategoryID  *string     `json:"category_id"`
	ExpenseDate models.Date `json:"expense_date"`
}

func (s *Server) expenseFromRequest(r *http.Request) (*models.Expense, string) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err.Error()
	}
	if req.Title == "" {
		return nil, "title is required"
	}
	if req.ExpenseDate.IsZero() {
		return nil, "expense_date is required"
	}
	if err := s.checkAmount(req.Amount); err != nil {
		return nil, err.Error()
	}
	return &models.Expense{
		UserID:      middleware.GetUserID(r.Context()),
		Title:       req.Title,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		ExpenseDate: req.ExpenseDate,
	}, ""
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	expense, msg := s.expenseFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		respondStorageError(w, err, "expense")
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondStorageError(w, err, "expense")
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	expense, msg := s.expenseFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := s.store.UpdateExpense(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), expense)
	if err != nil {
		respondStorageError(w, err, "expense")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteExpense(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err, "expense")
		return
	}
	respondJSON(w, http.StatusOK, deleted)
}
