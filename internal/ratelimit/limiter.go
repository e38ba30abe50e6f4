// Package ratelimit owns the throughput ceiling for the discovery provider.
// Executors never keep local counters; they all acquire from the one shared
// limiter.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the provider's observed contract.
const DefaultRequestsPerSecond = 3

// ProviderLimiter is a token-bucket limiter for outbound provider calls.
// Acquire blocks the caller until a token is available; requests are
// deferred, never dropped.
type ProviderLimiter struct {
	limiter *rate.Limiter
}

// NewProviderLimiter creates a limiter allowing requestsPerSecond sustained
// throughput with a burst of the same size. Non-positive values fall back to
// the default contract.
func NewProviderLimiter(requestsPerSecond int) *ProviderLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	return &ProviderLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Acquire blocks until a request slot is available or ctx is done.
func (l *ProviderLimiter) Acquire(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("acquire provider slot: %w", err)
	}
	return nil
}
