// Package notify defines the outbound delivery contracts for engine events:
// new-lead batches and execution failures. Persisted notifications are the
// source of truth; delivery through these sinks is best-effort fan-out.
package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
)

// NewLeadsPayload captures the canonical data emitted when an execution
// discovers new qualifying leads.
type NewLeadsPayload struct {
	SearchID       string
	SearchName     string
	ExecutionLogID string
	NewFound       int
	TotalFound     int
	OccurredAt     time.Time
}

// ExecutionFailurePayload captures the canonical data emitted when an
// execution attempt fails.
type ExecutionFailurePayload struct {
	SearchID   string
	SearchName string
	Trigger    string
	Error      string
	ErrorClass string
	Severity   string
	OccurredAt time.Time
}

// LeadSink describes a destination capable of consuming new-lead events.
type LeadSink interface {
	SendNewLeads(ctx context.Context, payload NewLeadsPayload) error
}

// FailureSink describes a destination capable of consuming execution
// failure events.
type FailureSink interface {
	SendExecutionFailure(ctx context.Context, payload ExecutionFailurePayload) error
}

// LeadSinkFunc adapts a function to the LeadSink interface (useful for tests).
type LeadSinkFunc func(ctx context.Context, payload NewLeadsPayload) error

// SendNewLeads implements the LeadSink interface.
func (f LeadSinkFunc) SendNewLeads(ctx context.Context, payload NewLeadsPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}

// FailureSinkFunc adapts a function to the FailureSink interface.
type FailureSinkFunc func(ctx context.Context, payload ExecutionFailurePayload) error

// SendExecutionFailure implements the FailureSink interface.
func (f FailureSinkFunc) SendExecutionFailure(ctx context.Context, payload ExecutionFailurePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
