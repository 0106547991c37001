// Package throttle paces outbound TMDB requests issued by the batch loops.
//
// Limiter is injected into the enrichment updater so tests can substitute Nop.
// The production implementation is a token bucket that blocks until a token is
// available or the context is cancelled; it does not react to 429 responses.
package throttle

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter gates each external call.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Nop never blocks; it only reports context cancellation.
type Nop struct{}

// Wait returns ctx.Err().
func (Nop) Wait(ctx context.Context) error {
	return ctx.Err()
}

// TokenBucket wraps golang.org/x/time/rate.
type TokenBucket struct {
	limiter *rate.Limiter
}

// NewTokenBucket returns a limiter admitting perSecond requests with the given
// burst. A non-positive rate yields Nop.
func NewTokenBucket(perSecond float64, burst int) Limiter {
	if perSecond <= 0 {
		return Nop{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until the next request may be issued.
func (b *TokenBucket) Wait(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}
