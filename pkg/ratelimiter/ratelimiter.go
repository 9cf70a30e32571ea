// Package ratelimiter throttles outgoing API calls with a token bucket.
package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

type RateLimiter interface {
	TakeToken() bool
	Wait(ctx context.Context) error
}

// TokenBucket holds up to capacity tokens and refills refillRate tokens per second.
type TokenBucket struct {
	limiter *rate.Limiter
}

func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	// Ensure positive values to prevent issues
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}

	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(refillRate), int(capacity)),
	}
}

// TakeToken consumes a token if one is available without blocking.
func (tb *TokenBucket) TakeToken() bool {
	return tb.limiter.Allow()
}

// Wait blocks until a token is available or ctx is done. It only ever
// returns ctx.Err() or context.DeadlineExceeded, never a limiter specific
// error, so callers can match cancellation with errors.Is.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	if err := tb.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// the limiter refuses up front when the wait would outlive the deadline
		return context.DeadlineExceeded
	}
	return nil
}
