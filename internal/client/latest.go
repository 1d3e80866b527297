package client

import (
	"context"
	"sync"
)

// Latest is a single-slot request token. Beginning a new request cancels the
// previous one, and only the most recently issued token stays current.
type Latest struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin invalidates any in-flight request and returns a context and token for
// the new one.
func (l *Latest) Begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.seq++
	l.cancel = cancel
	return ctx, l.seq
}

func (l *Latest) Current(token uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return token == l.seq
}

// Done releases the context of token if it is still the current one.
func (l *Latest) Done(token uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token == l.seq && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
