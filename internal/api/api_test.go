package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitpot/splitpot/internal/auth"
	"github.com/splitpot/splitpot/internal/service"
	"github.com/splitpot/splitpot/internal/storage/sqlite"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-test-secret", time.Hour)
	handler := NewHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewPaymentService(store),
	)

	server := httptest.NewServer(NewRouter(handler, jwtManager, []string{"*"}))
	t.Cleanup(server.Close)
	return server
}

// call sends a JSON request and decodes the JSON response into out (if not nil).
func call(t *testing.T, server *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func register(t *testing.T, server *httptest.Server, email, name string) (userID, token string) {
	t.Helper()
	var resp authResponse
	status := call(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"name":     name,
		"password": "correct-horse",
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	return resp.User.ID, resp.Token
}

func TestExpenseFlow(t *testing.T) {
	server := setupTestServer(t)

	aliceID, aliceToken := register(t, server, "alice@example.com", "Alice")
	bobID, bobToken := register(t, server, "bob@example.com", "Bob")

	// Alice creates a group with Bob.
	var group groupResponse
	status := call(t, server, http.MethodPost, "/api/groups", aliceToken, map[string]any{
		"name":    "Roommates",
		"members": []string{bobID},
	}, &group)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, []string{aliceID, bobID}, group.Members)

	// Alice records a 30.00 expense split with Bob.
	var expense expenseResponse
	status = call(t, server, http.MethodPost, "/api/expenses", aliceToken, map[string]any{
		"group_id":     group.ID,
		"description":  "Internet bill",
		"amount":       "30.00",
		"payer_id":     aliceID,
		"participants": []string{aliceID, bobID},
	}, &expense)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, expense.Shares[bobID].Equal(d("15.00")))

	// Bob owes Alice 15.00.
	var balances []balanceResponse
	status = call(t, server, http.MethodGet, "/api/groups/"+group.ID+"/balances", bobToken, nil, &balances)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, balances, 1)
	assert.Equal(t, bobID, balances[0].Debtor)
	assert.Equal(t, aliceID, balances[0].Creditor)
	assert.True(t, balances[0].Amount.Equal(d("15.00")))

	// The settlement plan is the single transfer Bob -> Alice.
	var plan []transferResponse
	status = call(t, server, http.MethodGet, "/api/groups/"+group.ID+"/settlement", aliceToken, nil, &plan)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, plan, 1)
	assert.Equal(t, bobID, plan[0].From)

	// Bob records and completes the settling payment.
	var payment paymentResponse
	status = call(t, server, http.MethodPost, "/api/payments", bobToken, map[string]any{
		"group_id":     group.ID,
		"from_user_id": bobID,
		"to_user_id":   aliceID,
		"amount":       "15.00",
	}, &payment)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", payment.Status)

	status = call(t, server, http.MethodPost, "/api/payments/"+payment.ID+"/complete", bobToken, nil, &payment)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", payment.Status)

	// Everything is settled.
	status = call(t, server, http.MethodGet, "/api/groups/"+group.ID+"/balances", aliceToken, nil, &balances)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, balances)
}

func TestValidationAndAuthErrors(t *testing.T) {
	server := setupTestServer(t)

	aliceID, aliceToken := register(t, server, "alice@example.com", "Alice")

	var group groupResponse
	status := call(t, server, http.MethodPost, "/api/groups", aliceToken, map[string]any{
		"name": "Solo",
	}, &group)
	require.Equal(t, http.StatusCreated, status)

	t.Run("short description is a 400 with a stable code", func(t *testing.T) {
		var errResp errorResponse
		status := call(t, server, http.MethodPost, "/api/expenses", aliceToken, map[string]any{
			"group_id":     group.ID,
			"description":  "Hi",
			"amount":       "10.00",
			"payer_id":     aliceID,
			"participants": []string{aliceID},
		}, &errResp)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "description_too_short", errResp.Code)
	})

	t.Run("zero amount is a 400", func(t *testing.T) {
		var errResp errorResponse
		status := call(t, server, http.MethodPost, "/api/expenses", aliceToken, map[string]any{
			"group_id":     group.ID,
			"description":  "Nothing",
			"amount":       "0",
			"payer_id":     aliceID,
			"participants": []string{aliceID},
		}, &errResp)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid_amount", errResp.Code)
	})

	t.Run("missing token is a 401", func(t *testing.T) {
		status := call(t, server, http.MethodGet, "/api/groups", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("unknown group is a 404", func(t *testing.T) {
		status := call(t, server, http.MethodGet, "/api/groups/nope/balances", aliceToken, nil, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("wrong password is a 401", func(t *testing.T) {
		status := call(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong-password",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
