package core

import (
	"context"
	"errors"

	"github.com/geoscout/geoscout/internal/domain"
	"github.com/geoscout/geoscout/internal/domain/model"
)

// Provider failure taxonomy. Adapters wrap their concrete errors with one of
// these sentinels so the executor can record a distinguishing detail without
// knowing transport specifics. All of them map to a failed execution; none of
// them deactivate the tracked search.
var (
	// ErrProviderUnavailable marks transient upstream failures: network
	// errors, timeouts, 5xx responses. Retried at the next scheduled interval.
	ErrProviderUnavailable = errors.New("discovery provider unavailable")

	// ErrProviderRejected marks requests the provider refused: bad
	// credentials, exhausted quota, upstream rate limiting. Needs operator
	// attention rather than time.
	ErrProviderRejected = errors.New("discovery provider rejected request")
)

// DiscoveryProvider is the external collaborator that runs one discovery
// search. Returned counts are already deduplicated and scored upstream; the
// engine never re-implements scoring.
type DiscoveryProvider interface {
	Search(ctx context.Context, p domain.SearchParams) (domain.SearchOutcome, error)
}

// RateLimiter bounds outbound provider calls. Acquire blocks until a slot is
// available or the context is cancelled; calls are deferred, never dropped.
type RateLimiter interface {
	Acquire(ctx context.Context) error
}

// SearchRunner executes one attempt for one tracked search. Implementations
// are failure boundaries: the outcome, including failures, is reported through
// the returned result and the execution log, never as an error.
type SearchRunner interface {
	Execute(ctx context.Context, search *model.TrackedSearch, trigger model.TriggerKind) domain.ExecutionResult
}
