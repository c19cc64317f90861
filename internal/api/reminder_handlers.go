package api

import (
	"net/http"

	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/money"
)

// reminderRequest carries the full set of mutable bill reminder fields.
type reminderRequest struct {
	Title       string      `json:"title"`
	Amount      money.Cents `json:"amount"`
	DueDate     models.Date `json:"due_date"`
	RepeatCycle *string     `json:"repeat_cycle"`
	Status      string      `json:"status"`
	Notes       *string     `json:"notes"`
}

func (s *Server) reminderFromRequest(r *http.Request) (*models.BillReminder, string) {
	var req reminderRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err.Error()
	}
	if req.Title == "" {
		return nil, "title is required"
	}
	if req.DueDate.IsZero() {
		return nil, "due_date is required"
	}
	if err := s.checkAmount(req.Amount); err != nil {
		return nil, err.Error()
	}
	return &models.BillReminder{
		UserID:      middleware.GetUserID(r.Context()),
		Title:       req.Title,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		RepeatCycle: req.RepeatCycle,
		Status:      req.Status,
		Notes:       req.Notes,
	}, ""
}

func (s *Server) handleCreateBillReminder(w http.ResponseWriter, r *http.Request) {
	reminder, msg := s.reminderFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.store.CreateBillReminder(r.Context(), reminder); err != nil {
		respondStorageError(w, err, "bill reminder")
		return
	}
	respondJSON(w, http.StatusCreated, reminder)
}

func (s *Server) handleListBillReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.store.ListBillReminders(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondStorageError(w, err, "bill reminder")
		return
	}
	respondJSON(w, http.StatusOK, reminders)
}

func (s *Server) handleUpdateBillReminder(w http.ResponseWriter, r *http.Request) {
	reminder, msg := s.reminderFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := s.store.UpdateBillReminder(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), reminder)
	if err != nil {
		respondStorageError(w, err, "bill reminder")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBillReminder(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteBillReminder(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err, "bill reminder")
		return
	}
	respondJSON(w, http.StatusOK, deleted)
}
