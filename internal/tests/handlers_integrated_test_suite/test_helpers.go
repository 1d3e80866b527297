package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

const testPassword = "secret-password"

var (
	token      string
	otherToken string
	database   *sql.DB
	categories map[string]models.Category
)

// userToken registers username on first use and logs in afterwards.
func userToken(r http.Handler, username string) (string, error) {
	w := postJSON(r, "/register", "", handler.RegisterRequest{Username: username, Password: testPassword, PasswordConfirm: testPassword})
	if w.Code == http.StatusConflict {
		w = postJSON(r, "/login", "", handler.UserLogin{Username: username, Password: testPassword})
	}
	if w.Code != http.StatusOK && w.Code != http.StatusCreated {
		return "", fmt.Errorf("token for %s: status %d: %s", username, w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func clearAllTransactions() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	const query = `DELETE FROM transactions WHERE user_id IN (SELECT id FROM users WHERE username LIKE 'it\_%')`
	if _, err := database.ExecContext(ctx, query); err != nil {
		fmt.Println(fmt.Errorf("failed to delete transactions: %w", err))
	}
}

func doRequest(r http.Handler, method, path, tok string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r http.Handler, path, tok string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	return doRequest(r, http.MethodPost, path, tok, bytes.NewReader(body))
}

func mustCreate(t *testing.T, r http.Handler, tok string, tr handler.TransactionRequest) int64 {
	t.Helper()
	w := postJSON(r, "/api/transactions", tok, tr)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}
	var resp handler.MessageResult
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp.ID
}

func filterTransactions(t *testing.T, r http.Handler, tok, query string) handler.TransactionsSearchResult {
	t.Helper()
	w := doRequest(r, http.MethodGet, "/api/transactions?"+query, tok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filter failed: %d %s", w.Code, w.Body.String())
	}
	var resp handler.TransactionsSearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func categoryID(name string) string {
	return fmt.Sprint(categories[name].ID)
}
