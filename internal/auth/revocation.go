package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/finance-tracker/internal/redissvc"
)

// Revoker remembers logged-out token ids until the tokens expire.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedPrefix = "auth:revoked:"

type RedisRevoker struct {
	rs *redissvc.RedisService
}

func NewRedisRevoker(rs *redissvc.RedisService) *RedisRevoker {
	return &RedisRevoker{rs: rs}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return r.rs.Mark(ctx, revokedPrefix+tokenID, time.Until(expiresAt))
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return r.rs.Exists(ctx, revokedPrefix+tokenID)
}

type InMemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewInMemoryRevoker() *InMemoryRevoker {
	return &InMemoryRevoker{revoked: map[string]time.Time{}}
}

func (r *InMemoryRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *InMemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[tokenID]
	if ok && time.Now().After(exp) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return ok, nil
}
