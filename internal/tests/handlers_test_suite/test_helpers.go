package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/auth"
	api "github.com/rogerio-castellano/finance-tracker/internal/http"
	"github.com/rogerio-castellano/finance-tracker/internal/http/ban"
	handler "github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/finance-tracker/internal/ledger"
	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
)

const banThreshold = 3

var (
	token      string
	otherToken string

	fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	transactionRepo *repo.InMemoryTransactionRepository
	userRepo        *repo.InMemoryUserRepository
	food, transport models.Category
	salary          models.Category
)

func init() {
	setupTestRepos()
	r := api.NewRouter()

	var err error
	if token, err = registerUser(r, "alice", "secret1"); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	if otherToken, err = registerUser(r, "bob", "secret2"); err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	categories := repo.NewInMemoryCategoryRepository()
	food = categories.Add(models.Category{Name: "Food", Kind: models.Expense})
	transport = categories.Add(models.Category{Name: "Transport", Kind: models.Expense})
	salary = categories.Add(models.Category{Name: "Salary", Kind: models.Income})
	handler.SetCategoryRepo(categories)

	transactionRepo = repo.NewInMemoryTransactionRepository(categories)
	analyticsRepo := repo.NewInMemoryAnalyticsRepository()
	analyticsRepo.SetRepositories(transactionRepo)

	handler.SetLedgerService(ledger.NewService(transactionRepo, categories, analyticsRepo,
		ledger.WithClock(func() time.Time { return fixedNow })))

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetAuthService(auth.NewAuthService(userRepo,
		auth.NewTokenIssuer("test-secret-at-least-16", time.Hour), auth.NewInMemoryRevoker()))
	handler.SetBanGuard(ban.NewGuard(ban.NewInMemoryCounter(), banThreshold, time.Minute))
}

func clearAllTransactions() {
	transactionRepo.Clear()
}

func registerUser(r http.Handler, username, password string) (string, error) {
	w := postJSON(r, "/register", "", handler.RegisterRequest{Username: username, Password: password, PasswordConfirm: password})
	if w.Code != http.StatusCreated {
		return "", fmt.Errorf("register %s: status %d: %s", username, w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doRequest(r http.Handler, method, path, tok string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
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
	return doRequest(r, http.MethodPost, path, tok, bytes.NewReader(body), "application/json")
}

func postForm(r http.Handler, path, tok, form string) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, path, tok, strings.NewReader(form), "application/x-www-form-urlencoded")
}

func createTransaction(r http.Handler, tok string, tr handler.TransactionRequest) *httptest.ResponseRecorder {
	return postJSON(r, "/api/transactions", tok, tr)
}

// mustCreate stores a transaction through the API and returns its id.
func mustCreate(r http.Handler, tok string, tr handler.TransactionRequest) int64 {
	w := createTransaction(r, tok, tr)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("create failed: %d %s", w.Code, w.Body.String()))
	}
	var resp handler.MessageResult
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp.ID
}

func filterTransactions(r http.Handler, tok, query string) (*httptest.ResponseRecorder, handler.TransactionsSearchResult) {
	w := doRequest(r, http.MethodGet, "/api/transactions?"+query, tok, nil, "")
	var resp handler.TransactionsSearchResult
	if w.Code == http.StatusOK {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func decodeError(w *httptest.ResponseRecorder) handler.ErrorResult {
	var resp handler.ErrorResult
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func categoryID(c models.Category) string {
	return fmt.Sprint(c.ID)
}

func seedPlaintextUser(username, password string) {
	_, _ = userRepo.CreateUser(context.Background(), models.User{Username: username, PasswordHash: password})
}
