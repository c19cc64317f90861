package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finledger/finledger/internal/auth"
	"github.com/finledger/finledger/internal/storage/sqlite"
)

func newTestServer(t *testing.T, allowNegative bool) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	server := NewServer(store, authenticator, tokens, allowNegative)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request with an optional bearer token and decodes the JSON
// response into a generic map.
func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, method, url, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func registerAndLogin(t *testing.T, ts *httptest.Server, email, phone string) string {
	t.Helper()

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/register", "", map[string]any{
		"name":        "Test User",
		"phonenumber": phone,
		"email":       email,
		"password":    "a strong password",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, http.MethodPost, ts.URL+"/login", "", map[string]any{
		"email":    email,
		"password": "a strong password",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t, false)

	t.Run("missing fields", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, ts.URL+"/register", "", map[string]any{
			"email": "x@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("weak password", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, ts.URL+"/register", "", map[string]any{
			"name": "A", "phonenumber": "1", "email": "a@example.com", "password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		payload := map[string]any{
			"name": "A", "phonenumber": "900-0001", "email": "dup@example.com", "password": "a strong password",
		}
		status, _ := doJSON(t, http.MethodPost, ts.URL+"/register", "", payload)
		require.Equal(t, http.StatusCreated, status)

		payload["phonenumber"] = "900-0002"
		status, _ = doJSON(t, http.MethodPost, ts.URL+"/register", "", payload)
		assert.Equal(t, http.StatusConflict, status)
	})
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t, false)
	registerAndLogin(t, ts, "login@example.com", "901-0001")

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/login", "", map[string]any{
		"email": "login@example.com", "password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t, false)

	for _, route := range []string{"/incomes", "/expenses", "/categories", "/bill-reminders", "/summary"} {
		t.Run(route, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.URL+route, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}

	t.Run("garbage token", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodGet, ts.URL+"/summary", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestLedgerFlowAndSummary(t *testing.T) {
	ts := newTestServer(t, false)
	token := registerAndLogin(t, ts, "flow@example.com", "902-0001")

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/incomes", token, map[string]any{
		"amount": 100.00, "source": "salary", "received_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, http.MethodPost, ts.URL+"/incomes", token, map[string]any{
		"amount": 50.50, "received_date": "2024-01-02",
	})
	require.Equal(t, http.StatusCreated, status)

	status, expense := doJSON(t, http.MethodPost, ts.URL+"/expenses", token, map[string]any{
		"title": "Dinner", "amount": 30.25, "expense_date": "2024-01-03",
	})
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, expense["id"])

	status, summary := doJSON(t, http.MethodGet, ts.URL+"/summary", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 150.50, summary["total_income"])
	assert.Equal(t, 30.25, summary["total_expense"])
	assert.Equal(t, 120.25, summary["remaining_amount"])
	assert.Equal(t, 0.0, summary["needed_amount"])
	assert.Equal(t, "Within Budget", summary["status"])

	// Push the ledger over budget.
	status, _ = doJSON(t, http.MethodPost, ts.URL+"/expenses", token, map[string]any{
		"title": "Rent", "amount": 200.00, "expense_date": "2024-01-04",
	})
	require.Equal(t, http.StatusCreated, status)

	status, summary = doJSON(t, http.MethodGet, ts.URL+"/summary", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, -49.50, summary["remaining_amount"])
	assert.Equal(t, 49.50, summary["needed_amount"])
	assert.Equal(t, "Over Budget", summary["status"])

	status, incomes := doJSONList(t, http.MethodGet, ts.URL+"/incomes", token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, incomes, 2)
}

func TestUpdateNonexistentIncomeIsNotFound(t *testing.T) {
	ts := newTestServer(t, false)
	token := registerAndLogin(t, ts, "nf@example.com", "903-0001")

	status, _ := doJSON(t, http.MethodPut, ts.URL+"/incomes/no-such-id", token, map[string]any{
		"amount": 10.00, "received_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOwnershipIsolation(t *testing.T) {
	ts := newTestServer(t, false)
	alice := registerAndLogin(t, ts, "alice@example.com", "904-0001")
	mallory := registerAndLogin(t, ts, "mallory@example.com", "904-0002")

	status, income := doJSON(t, http.MethodPost, ts.URL+"/incomes", alice, map[string]any{
		"amount": 42.00, "received_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, status)
	id := income["id"].(string)

	// Another user cannot see, mutate or delete the row.
	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/incomes/"+id, mallory, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, http.MethodPut, ts.URL+"/incomes/"+id, mallory, map[string]any{
		"amount": 1.00, "received_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, incomes := doJSONList(t, http.MethodGet, ts.URL+"/incomes", mallory)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, incomes)

	status, incomes = doJSONList(t, http.MethodGet, ts.URL+"/incomes", alice)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, incomes, 1)
}

func TestCategoryDeletionDetachesExpenses(t *testing.T) {
	ts := newTestServer(t, false)
	token := registerAndLogin(t, ts, "cat@example.com", "905-0001")

	status, category := doJSON(t, http.MethodPost, ts.URL+"/categories", token, map[string]any{
		"name": "Food", "color": "#00ff00",
	})
	require.Equal(t, http.StatusCreated, status)
	categoryID := category["id"].(string)

	status, expense := doJSON(t, http.MethodPost, ts.URL+"/expenses", token, map[string]any{
		"title": "Lunch", "amount": 12.50, "category_id": categoryID, "expense_date": "2024-01-05",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, categoryID, expense["category_id"])

	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/categories/"+categoryID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, expenses := doJSONList(t, http.MethodGet, ts.URL+"/expenses", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, expenses, 1)
	assert.Nil(t, expenses[0]["category_id"])
}

func TestNegativeAmountPolicy(t *testing.T) {
	t.Run("rejected by default", func(t *testing.T) {
		ts := newTestServer(t, false)
		token := registerAndLogin(t, ts, "neg@example.com", "906-0001")

		status, body := doJSON(t, http.MethodPost, ts.URL+"/incomes", token, map[string]any{
			"amount": -5.00, "received_date": "2024-01-01",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, fmt.Sprint(body["error"]), "negative")
	})

	t.Run("accepted when configured", func(t *testing.T) {
		ts := newTestServer(t, true)
		token := registerAndLogin(t, ts, "refund@example.com", "906-0002")

		status, _ := doJSON(t, http.MethodPost, ts.URL+"/expenses", token, map[string]any{
			"title": "Refund", "amount": -5.00, "expense_date": "2024-01-01",
		})
		assert.Equal(t, http.StatusCreated, status)
	})
}

func TestBillReminderFlow(t *testing.T) {
	ts := newTestServer(t, false)
	token := registerAndLogin(t, ts, "bills@example.com", "907-0001")

	status, reminder := doJSON(t, http.MethodPost, ts.URL+"/bill-reminders", token, map[string]any{
		"title": "Rent", "amount": 1200.00, "due_date": "2024-02-01", "repeat_cycle": "monthly",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", reminder["status"])
	id := reminder["id"].(string)

	status, updated := doJSON(t, http.MethodPut, ts.URL+"/bill-reminders/"+id, token, map[string]any{
		"title": "Rent", "amount": 1200.00, "due_date": "2024-02-01", "status": "paid",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "paid", updated["status"])
	assert.Nil(t, updated["repeat_cycle"], "omitted optional field must be cleared")

	status, deleted := doJSON(t, http.MethodDelete, ts.URL+"/bill-reminders/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rent", deleted["title"])
}

func TestDeleteAccountCascades(t *testing.T) {
	ts := newTestServer(t, false)
	token := registerAndLogin(t, ts, "gone@example.com", "908-0001")

	status, _ := doJSON(t, http.MethodPost, ts.URL+"/incomes", token, map[string]any{
		"amount": 10.00, "received_date": "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, http.MethodDelete, ts.URL+"/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	// The token's subject no longer exists, so the gate rejects it.
	status, _ = doJSON(t, http.MethodGet, ts.URL+"/incomes", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, false)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
