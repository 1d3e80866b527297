package http

import (
	"errors"
	"net/http"
	"net/netip"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/finance-tracker/internal/auth"
	"github.com/rogerio-castellano/finance-tracker/internal/http/handlers"
	"github.com/rs/zerolog"
)

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

func unauthorized(w http.ResponseWriter, message string) {
	jsonError(w, http.StatusUnauthorized, message)
}

// AuthMiddleware accepts a bearer token or the login cookie and stores the
// verified claims in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ""
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		} else if c, err := r.Cookie(handlers.TokenCookie); err == nil {
			tokenStr = c.Value
		}
		if tokenStr == "" {
			unauthorized(w, "missing or invalid token")
			return
		}

		claims, err := handlers.AuthService().Authenticate(r.Context(), tokenStr)
		switch {
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrRevoked):
			unauthorized(w, "invalid token")
			return
		case err != nil:
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("token check failed")
			jsonError(w, http.StatusInternalServerError, "an internal error occurred, please try again later")
			return
		}

		l := zerolog.Ctx(r.Context()).With().Int64("user_id", claims.UserID).Logger()
		ctx := l.WithContext(handlers.WithClaims(r.Context(), claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimitMiddleware rejects clients that exceed their token bucket.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter != nil && !limiter.Allow(handlers.ClientIP(r)) {
			jsonError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProxiedRealIP rewrites RemoteAddr from the forwarding headers only when
// the connection comes from a trusted proxy. Everyone else is identified by
// the socket address.
func ProxiedRealIP(next http.Handler) http.Handler {
	forwarded := middleware.RealIP(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fromTrustedProxy(r.RemoteAddr) {
			forwarded.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func fromTrustedProxy(remoteAddr string) bool {
	if len(trustedProxies) == 0 {
		return false
	}
	var addr netip.Addr
	if ap, err := netip.ParseAddrPort(remoteAddr); err == nil {
		addr = ap.Addr()
	} else if addr, err = netip.ParseAddr(remoteAddr); err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
