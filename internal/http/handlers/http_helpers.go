package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/rogerio-castellano/finance-tracker/internal/auth"
	"github.com/rogerio-castellano/finance-tracker/internal/ledger"
	"github.com/rs/zerolog"
)

type contextKey string

const claimsKey = contextKey("claims")

// WithClaims stores the authenticated caller in ctx.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromContext returns the authenticated caller, if any.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func userID(r *http.Request) int64 {
	c, _ := ClaimsFromContext(r.Context())
	return c.UserID
}

// ClientIP is the request's remote address without the port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

const maxBodyBytes = 1048576 // one megabyte

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// readFields reads a flat JSON object or a form body into url.Values so
// handlers accept both without caring which one arrived.
func readFields(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to read form: %w", err)
		}
		return r.PostForm, nil
	}

	var raw map[string]json.RawMessage
	if err := readJSON(w, r, &raw); err != nil {
		return nil, err
	}

	fields := url.Values{}
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			fields.Set(k, s)
			continue
		}
		if string(v) == "null" {
			continue
		}
		fields.Set(k, strings.TrimSpace(string(v)))
	}
	return fields, nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write JSON response")
	}
}

func fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, ErrorResult{Success: false, Message: message})
}

// writeError maps domain errors to status codes. Anything unrecognized is
// logged and reported as a generic server error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ledger.ValidationError
	var inErr *auth.InputError

	switch {
	case errors.As(err, &verr):
		fail(w, r, http.StatusBadRequest, verr.Error())
	case errors.As(err, &inErr):
		fail(w, r, http.StatusBadRequest, inErr.Error())
	case errors.Is(err, ledger.ErrNotFound):
		fail(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrForbidden):
		fail(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		fail(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUsernameTaken):
		fail(w, r, http.StatusConflict, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		fail(w, r, http.StatusInternalServerError, "an internal error occurred, please try again later")
	}
}
