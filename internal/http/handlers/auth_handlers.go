package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/auth"
	"github.com/rs/zerolog"
)

const TokenCookie = "access_token"

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body UserLogin true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} ErrorResult
// @Failure 401 {object} ErrorResult
// @Failure 429 {object} ErrorResult
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx, client := r.Context(), ClientIP(r)

	if banGuard != nil {
		banned, err := banGuard.Banned(ctx, client)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("ban lookup failed")
		}
		if banned {
			w.Header().Set("Retry-After", strconv.Itoa(int(banGuard.Window().Seconds())))
			fail(w, r, http.StatusTooManyRequests, "too many failed attempts, try again later")
			return
		}
	}

	fields, err := readFields(w, r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid input")
		return
	}
	if fields.Get("username") == "" || fields.Get("password") == "" {
		fail(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	token, claims, err := authService.Login(ctx, fields.Get("username"), fields.Get("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) && banGuard != nil {
		if _, ferr := banGuard.Fail(ctx, client, r.URL.Path); ferr != nil {
			zerolog.Ctx(ctx).Warn().Err(ferr).Msg("failed to record login failure")
		}
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	if banGuard != nil {
		_ = banGuard.Reset(ctx, client)
	}
	issueToken(w, r, http.StatusOK, token, claims)
}

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body RegisterRequest true "username, password and confirmation"
// @Success 201 {object} LoginResult
// @Failure 400 {object} ErrorResult
// @Failure 409 {object} ErrorResult
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	token, claims, err := authService.Register(r.Context(), fields.Get("username"), fields.Get("password"), fields.Get("password_confirm"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("user_id", claims.UserID).Msg("user registered")
	issueToken(w, r, http.StatusCreated, token, claims)
}

// LogoutHandler godoc
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResult
// @Failure 401 {object} ErrorResult
// @Router /api/logout [post]
// @Security BearerAuth
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	if err := authService.Logout(r.Context(), claims); err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: TokenCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	respond(w, r, http.StatusOK, MessageResult{Success: true, Message: "logged out"})
}

func issueToken(w http.ResponseWriter, r *http.Request, status int, token string, c auth.Claims) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  c.ExpiresAt,
		MaxAge:   int(time.Until(c.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respond(w, r, status, LoginResult{Success: true, Token: token, ExpiresAt: c.ExpiresAt, Username: c.Username})
}
