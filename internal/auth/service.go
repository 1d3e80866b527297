package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrRevoked            = errors.New("token has been revoked")
)

var usernamePattern = regexp.MustCompile(`^\w{3,50}$`)

// InputError lists every problem with a registration request.
type InputError struct {
	Problems []string
}

func (e *InputError) Error() string {
	return strings.Join(e.Problems, ", ")
}

type AuthService struct {
	users   repo.UserRepository
	tokens  *TokenIssuer
	revoker Revoker
}

func NewAuthService(users repo.UserRepository, tokens *TokenIssuer, revoker Revoker) *AuthService {
	return &AuthService{users: users, tokens: tokens, revoker: revoker}
}

// Login verifies credentials and issues a token. Legacy plaintext
// passwords are rehashed on a successful login.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, Claims, error) {
	user, err := a.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrUserNotFound) {
		return "", Claims{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", Claims{}, fmt.Errorf("user lookup: %w", err)
	}

	ok, upgrade := CheckPassword(user.PasswordHash, password)
	if !ok {
		return "", Claims{}, ErrInvalidCredentials
	}
	if upgrade {
		hash, err := HashPassword(password)
		if err == nil {
			err = a.users.UpdatePasswordHash(ctx, user.ID, hash)
		}
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Int64("user_id", user.ID).Msg("password upgrade failed")
		}
	}

	return a.tokens.Issue(user)
}

// Register creates a user and logs them in.
func (a *AuthService) Register(ctx context.Context, username, password, confirm string) (string, Claims, error) {
	username = strings.TrimSpace(username)

	var problems []string
	if !usernamePattern.MatchString(username) {
		problems = append(problems, "username must be 3-50 letters, digits or underscores")
	}
	switch {
	case len(password) < 6:
		problems = append(problems, "password must be at least 6 characters")
	case len(password) > MaxPasswordBytes:
		problems = append(problems, fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	if password != confirm {
		problems = append(problems, "password confirmation does not match")
	}
	if len(problems) > 0 {
		return "", Claims{}, &InputError{Problems: problems}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", Claims{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.CreateUser(ctx, models.User{Username: username, PasswordHash: hash})
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return "", Claims{}, ErrUsernameTaken
	}
	if err != nil {
		return "", Claims{}, fmt.Errorf("create user: %w", err)
	}

	return a.tokens.Issue(user)
}

// Authenticate parses a token and rejects revoked ones.
func (a *AuthService) Authenticate(ctx context.Context, token string) (Claims, error) {
	c, err := a.tokens.Parse(token)
	if err != nil {
		return Claims{}, err
	}
	revoked, err := a.revoker.IsRevoked(ctx, c.TokenID)
	if err != nil {
		return Claims{}, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return Claims{}, ErrRevoked
	}
	return c, nil
}

func (a *AuthService) Logout(ctx context.Context, c Claims) error {
	return a.revoker.Revoke(ctx, c.TokenID, c.ExpiresAt)
}
