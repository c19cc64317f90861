package api

import (
	"net/http"

	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/models"
)

// categoryRequest carries the full set of mutable category fields.
type categoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

func (s *Server) categoryFromRequest(r *http.Request) (*models.Category, string) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err.Error()
	}
	if req.Name == "" {
		return nil, "name is required"
	}
	return &models.Category{
		UserID: middleware.GetUserID(r.Context()),
		Name:   req.Name,
		Color:  req.Color,
	}, ""
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	category, msg := s.categoryFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := s.store.CreateCategory(r.Context(), category); err != nil {
		respondStorageError(w, err, "category")
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondStorageError(w, err, "category")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	category, msg := s.categoryFromRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := s.store.UpdateCategory(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), category)
	if err != nil {
		respondStorageError(w, err, "category")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteCategory(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondStorageError(w, err, "category")
		return
	}
	respondJSON(w, http.StatusOK, deleted)
}
