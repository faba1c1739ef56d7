package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a token budget per minute, on top of a plain
// request limiter. Wait blocks until the requested amount fits into the
// current window.
type TokenLimiter struct {
	mu        sync.Mutex
	limit     int
	remaining int
	resetAt   time.Time
}

// NewTokenLimiter creates a limiter with the given tokens-per-minute budget.
func NewTokenLimiter(limit int) *TokenLimiter {
	return &TokenLimiter{
		limit:     limit,
		remaining: limit,
		resetAt:   time.Now().Add(time.Minute),
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refresh()
	return l.remaining
}

// Wait blocks until n tokens are available or the context is canceled.
// Requests larger than the whole budget consume a full window.
func (l *TokenLimiter) Wait(ctx context.Context, n int) error {
	for {
		l.mu.Lock()
		l.refresh()
		if n > l.limit {
			n = l.limit
		}
		if l.remaining >= n {
			l.remaining -= n
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.resetAt)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (l *TokenLimiter) refresh() {
	if time.Now().After(l.resetAt) {
		l.remaining = l.limit
		l.resetAt = time.Now().Add(time.Minute)
	}
}
