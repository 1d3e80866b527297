package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/auth"
	api "github.com/rogerio-castellano/finance-tracker/internal/http"
	handler "github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
)

func loginFrom(r http.Handler, ip, username, password string) *httptest.ResponseRecorder {
	return loginVia(r, ip+":40000", "", username, password)
}

// loginVia posts a login from remoteAddr, optionally claiming realIP in
// the X-Real-IP header.
func loginVia(r http.Handler, remoteAddr, realIP, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.UserLogin{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remoteAddr
	if realIP != "" {
		req.Header.Set("X-Real-IP", realIP)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler(t *testing.T) {
	r := api.NewRouter()

	tests := []struct {
		name       string
		ip         string
		username   string
		password   string
		expectCode int
	}{
		{"Valid credentials", "10.0.0.1", "alice", "secret1", http.StatusOK},
		{"Wrong password", "10.0.0.2", "alice", "wrong", http.StatusUnauthorized},
		{"Unknown user", "10.0.0.3", "nobody", "secret1", http.StatusUnauthorized},
		{"Missing password", "10.0.0.4", "alice", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := loginFrom(r, tt.ip, tt.username, tt.password)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
			if tt.expectCode != http.StatusOK {
				return
			}

			var resp handler.LoginResult
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if resp.Token == "" || resp.Username != "alice" {
				t.Errorf("unexpected login result %+v", resp)
			}

			var cookie *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == handler.TokenCookie {
					cookie = c
				}
			}
			if cookie == nil || cookie.Value != resp.Token || !cookie.HttpOnly {
				t.Errorf("expected an http-only token cookie, got %+v", cookie)
			}
		})
	}
}

func TestLoginHandler_FormBody(t *testing.T) {
	r := api.NewRouter()

	w := postForm(r, "/login", "", "username=alice&password=secret1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginHandler_UpgradesPlaintextPassword(t *testing.T) {
	r := api.NewRouter()
	seedPlaintextUser("legacy", "plainpass")

	if w := loginFrom(r, "10.0.1.1", "legacy", "plainpass"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	u, err := userRepo.GetByUsername(context.Background(), "legacy")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if u.PasswordHash == "plainpass" || !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Errorf("expected a bcrypt hash after login, got %q", u.PasswordHash)
	}

	if w := loginFrom(r, "10.0.1.1", "legacy", "plainpass"); w.Code != http.StatusOK {
		t.Errorf("expected login against the new hash to succeed, got %d", w.Code)
	}
}

func TestLoginHandler_BansRepeatedFailures(t *testing.T) {
	r := api.NewRouter()
	const ip = "10.0.2.1"

	for i := 0; i < banThreshold; i++ {
		if w := loginFrom(r, ip, "alice", "wrong"); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}

	if w := loginFrom(r, ip, "alice", "secret1"); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for a banned client, got %d", w.Code)
	}
	if w := loginFrom(r, "10.0.2.2", "alice", "secret1"); w.Code != http.StatusOK {
		t.Errorf("expected other clients to be unaffected, got %d", w.Code)
	}
}

func TestLoginHandler_BanIgnoresForwardingHeadersFromClients(t *testing.T) {
	r := api.NewRouter()
	const remote = "10.0.4.1:52000"

	for i := 0; i < banThreshold; i++ {
		realIP := fmt.Sprintf("203.0.113.%d", i+1)
		if w := loginVia(r, remote, realIP, "alice", "wrong"); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}

	if w := loginVia(r, remote, "203.0.113.99", "alice", "secret1"); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected the socket address to stay banned, got %d", w.Code)
	}
}

func TestLoginHandler_TrustedProxyForwardsClientAddress(t *testing.T) {
	api.SetTrustedProxies([]netip.Prefix{netip.MustParsePrefix("10.0.5.0/24")})
	t.Cleanup(func() { api.SetTrustedProxies(nil) })
	r := api.NewRouter()
	const proxy = "10.0.5.1:52000"

	for i := 0; i < banThreshold; i++ {
		loginVia(r, proxy, "198.51.100.1", "alice", "wrong")
	}

	if w := loginVia(r, proxy, "198.51.100.1", "alice", "secret1"); w.Code != http.StatusTooManyRequests {
		t.Errorf("expected the forwarded client to be banned, got %d", w.Code)
	}
	if w := loginVia(r, proxy, "198.51.100.2", "alice", "secret1"); w.Code != http.StatusOK {
		t.Errorf("expected other clients behind the proxy to be unaffected, got %d", w.Code)
	}
}

func TestLoginHandler_SuccessResetsFailures(t *testing.T) {
	r := api.NewRouter()
	const ip = "10.0.3.1"

	for i := 0; i < banThreshold-1; i++ {
		loginFrom(r, ip, "alice", "wrong")
	}
	if w := loginFrom(r, ip, "alice", "secret1"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for i := 0; i < banThreshold-1; i++ {
		loginFrom(r, ip, "alice", "wrong")
	}
	if w := loginFrom(r, ip, "alice", "secret1"); w.Code != http.StatusOK {
		t.Errorf("expected the counter to restart after a success, got %d", w.Code)
	}
}

func TestRegisterHandler(t *testing.T) {
	r := api.NewRouter()

	tests := []struct {
		name            string
		payload         handler.RegisterRequest
		expectCode      int
		expectedMessage string
	}{
		{
			name:       "Valid",
			payload:    handler.RegisterRequest{Username: "dave_01", Password: "hunter22", PasswordConfirm: "hunter22"},
			expectCode: http.StatusCreated,
		},
		{
			name:            "Duplicate username",
			payload:         handler.RegisterRequest{Username: "alice", Password: "hunter22", PasswordConfirm: "hunter22"},
			expectCode:      http.StatusConflict,
			expectedMessage: "username already exists",
		},
		{
			name:            "Every field wrong",
			payload:         handler.RegisterRequest{Username: "a!", Password: "123", PasswordConfirm: "456"},
			expectCode:      http.StatusBadRequest,
			expectedMessage: "username must be 3-50 letters, digits or underscores, password must be at least 6 characters, password confirmation does not match",
		},
		{
			name:            "Password longer than bcrypt accepts",
			payload:         handler.RegisterRequest{Username: "long_pw", Password: strings.Repeat("x", 80), PasswordConfirm: strings.Repeat("x", 80)},
			expectCode:      http.StatusBadRequest,
			expectedMessage: "password must be at most 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/register", "", tt.payload)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, w.Code, w.Body.String())
			}
			if tt.expectedMessage != "" {
				if msg := decodeError(w).Message; msg != tt.expectedMessage {
					t.Errorf("expected message %q, got %q", tt.expectedMessage, msg)
				}
				return
			}

			var resp handler.LoginResult
			_ = json.NewDecoder(w.Body).Decode(&resp)
			if resp.Token == "" {
				t.Error("expected a token after registration")
			}
		})
	}
}

func TestLogoutHandler_RevokesToken(t *testing.T) {
	r := api.NewRouter()

	tok, err := registerUser(r, "carol", "secret3")
	if err != nil {
		t.Fatal(err)
	}

	if w, _ := filterTransactions(r, tok, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", w.Code)
	}

	w := doRequest(r, http.MethodPost, "/api/logout", tok, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if w, _ := filterTransactions(r, tok, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
}

func TestAuthMiddleware_AcceptsCookie(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.AddCookie(&http.Cookie{Name: handler.TokenCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with cookie auth, got %d", w.Code)
	}
}

type unavailableRevoker struct{}

func (unavailableRevoker) Revoke(context.Context, string, time.Time) error {
	return errors.New("revocation store unavailable")
}

func (unavailableRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("revocation store unavailable")
}

func TestAuthMiddleware_RevocationStoreFailure(t *testing.T) {
	prev := handler.AuthService()
	t.Cleanup(func() { handler.SetAuthService(prev) })
	handler.SetAuthService(auth.NewAuthService(userRepo,
		auth.NewTokenIssuer("test-secret-at-least-16", time.Hour), unavailableRevoker{}))
	r := api.NewRouter()

	w := doRequest(r, http.MethodGet, "/api/categories", token, nil, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if resp := decodeError(w); resp.Success || resp.Message != "an internal error occurred, please try again later" {
		t.Errorf("unexpected error body %+v", resp)
	}
}
