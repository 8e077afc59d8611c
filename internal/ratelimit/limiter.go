// Package ratelimit paces outbound API requests on the client side.
package ratelimit

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// Limiter is a token-bucket limiter. A nil *Limiter never blocks, so callers
// can hold one unconditionally and leave pacing disabled.
type Limiter struct {
	inner *rate.Limiter
}

// New returns a Limiter admitting rps requests per second with the given burst.
// It returns nil when rps is zero or negative, which disables pacing.
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = max(1, int(math.Ceil(rps)))
	}
	return &Limiter{inner: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until a request may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.inner.Wait(ctx)
}
