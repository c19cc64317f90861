package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finledger/finledger/internal/auth"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/models"
	"github.com/finledger/finledger/internal/storage"
)

type registerRequest struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phonenumber"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Address      *string `json:"address"`
	ProfileImage *string `json:"profileimage"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Phone == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "name, phonenumber and email are required")
		return
	}

	user, err := s.authenticator.Register(r.Context(), auth.Registration{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Password:     req.Password,
		Address:      req.Address,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, storage.ErrConstraint) {
			respondError(w, http.StatusConflict, "email or phone number already registered")
			return
		}
		slog.Error("Registration failed", "email", req.Email, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("Login failed", "email", req.Email)
		respondError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	slog.Info("User logged in", "user_id", user.ID)
	respondJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondStorageError(w, err, "user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	user, err := s.store.DeleteUser(r.Context(), userID)
	if err != nil {
		respondStorageError(w, err, "user")
		return
	}

	slog.Info("User deleted", "user_id", userID)
	respondJSON(w, http.StatusOK, user)
}
