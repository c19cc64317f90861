// Package api exposes the ledger over a JSON HTTP interface.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finledger/finledger/internal/auth"
	"github.com/finledger/finledger/internal/budget"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/internal/storage"
)

// Server holds the handler dependencies and assembles the route table.
type Server struct {
	store         storage.Store
	authenticator auth.Authenticator
	tokens        *auth.TokenManager
	aggregator    *budget.Aggregator
	allowNegative bool
}

// NewServer creates an API server over the given collaborators.
// allowNegative controls whether negative income/expense amounts are accepted.
func NewServer(store storage.Store, authenticator auth.Authenticator, tokens *auth.TokenManager, allowNegative bool) *Server {
	return &Server{
		store:         store,
		authenticator: authenticator,
		tokens:        tokens,
		aggregator:    budget.NewAggregator(store),
		allowNegative: allowNegative,
	}
}

// Router builds the request multiplexer with all routes registered.
func (s *Server) Router() *http.ServeMux {
	mux := http.NewServeMux()
	protected := middleware.RequireAuth(s.tokens, s.store)

	// Public routes.
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Everything below is scoped to the authenticated user.
	mux.Handle("GET /users/me", protected(http.HandlerFunc(s.handleGetMe)))
	mux.Handle("DELETE /users/me", protected(http.HandlerFunc(s.handleDeleteMe)))

	mux.Handle("POST /incomes", protected(http.HandlerFunc(s.handleCreateIncome)))
	mux.Handle("GET /incomes", protected(http.HandlerFunc(s.handleListIncomes)))
	mux.Handle("PUT /incomes/{id}", protected(http.HandlerFunc(s.handleUpdateIncome)))
	mux.Handle("DELETE /incomes/{id}", protected(http.HandlerFunc(s.handleDeleteIncome)))

	mux.Handle("POST /expenses", protected(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("GET /expenses", protected(http.HandlerFunc(s.handleListExpenses)))
	mux.Handle("PUT /expenses/{id}", protected(http.HandlerFunc(s.handleUpdateExpense)))
	mux.Handle("DELETE /expenses/{id}", protected(http.HandlerFunc(s.handleDeleteExpense)))

	mux.Handle("POST /categories", protected(http.HandlerFunc(s.handleCreateCategory)))
	mux.Handle("GET /categories", protected(http.HandlerFunc(s.handleListCategories)))
	mux.Handle("PUT /categories/{id}", protected(http.HandlerFunc(s.handleUpdateCategory)))
	mux.Handle("DELETE /categories/{id}", protected(http.HandlerFunc(s.handleDeleteCategory)))

	mux.Handle("POST /bill-reminders", protected(http.HandlerFunc(s.handleCreateBillReminder)))
	mux.Handle("GET /bill-reminders", protected(http.HandlerFunc(s.handleListBillReminders)))
	mux.Handle("PUT /bill-reminders/{id}", protected(http.HandlerFunc(s.handleUpdateBillReminder)))
	mux.Handle("DELETE /bill-reminders/{id}", protected(http.HandlerFunc(s.handleDeleteBillReminder)))

	mux.Handle("GET /summary", protected(http.HandlerFunc(s.handleSummary)))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
