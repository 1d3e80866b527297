// Package ban refuses clients that keep failing to log in.
package ban

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Counter is a store of expiring counters. *redissvc.RedisService implements it.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, key string) error
}

const keyPrefix = "ban:login:"

// Guard counts failed logins per client. Once maxFailures is reached the
// client stays banned until its window expires.
type Guard struct {
	counter     Counter
	maxFailures int64
	window      time.Duration
}

func NewGuard(counter Counter, maxFailures int, window time.Duration) *Guard {
	return &Guard{counter: counter, maxFailures: int64(maxFailures), window: window}
}

func (g *Guard) Window() time.Duration {
	return g.window
}

func (g *Guard) Banned(ctx context.Context, client string) (bool, error) {
	n, err := g.counter.Count(ctx, keyPrefix+client)
	if err != nil {
		return false, err
	}
	return n >= g.maxFailures, nil
}

// Fail records a failed attempt and reports whether the client is now banned.
func (g *Guard) Fail(ctx context.Context, client, route string) (bool, error) {
	strikes, err := g.counter.Incr(ctx, keyPrefix+client, g.window)
	if err != nil {
		return false, err
	}
	if strikes == g.maxFailures {
		zerolog.Ctx(ctx).Warn().
			Str("client", client).
			Str("route", route).
			Int64("strikes", strikes).
			Dur("window", g.window).
			Msg("client banned")
		return true, nil
	}
	return strikes > g.maxFailures, nil
}

func (g *Guard) Reset(ctx context.Context, client string) error {
	return g.counter.Del(ctx, keyPrefix+client)
}

type entry struct {
	n       int64
	expires time.Time
}

// InMemoryCounter is a process-local Counter for tests and single-node runs.
type InMemoryCounter struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewInMemoryCounter() *InMemoryCounter {
	return &InMemoryCounter{entries: map[string]entry{}}
}

func (c *InMemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		e = entry{expires: time.Now().Add(window)}
	}
	e.n++
	c.entries[key] = e
	return e.n, nil
}

func (c *InMemoryCounter) Count(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		return 0, nil
	}
	return e.n, nil
}

func (c *InMemoryCounter) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
