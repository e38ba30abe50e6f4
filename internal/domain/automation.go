// Package domain contains domain-specific business logic and entities for the geoscout automation engine.
package domain

import (
	"time"

	"github.com/geoscout/geoscout/internal/domain/model"
)

// AdvanceCursorParams groups parameters for TrackedSearchRepository.AdvanceCursor.
//
// The cursor is advanced exactly once per execution attempt, success or
// failure. For scheduled triggers the next run is computed from CompletedAt,
// not from the original due time, so a backlog after downtime never produces
// a catch-up storm. Manual triggers leave next_run_at untouched.
type AdvanceCursorParams struct {
	ID          string
	Trigger     model.TriggerKind
	CompletedAt time.Time
	Interval    time.Duration
	// NewFound feeds the yield counters (total_new_found, last_new_count).
	// Zero on failed runs.
	NewFound int
}

// RecordExecutionParams groups parameters for ExecutionLogRepository.Record.
type RecordExecutionParams struct {
	TrackedSearchID string
	Trigger         model.TriggerKind
	Status          model.ExecutionStatus
	TotalFound      int
	NewFound        int
	Duration        time.Duration
	// Error carries the human-readable failure summary; empty on success.
	Error string
}

// SearchParams is the request handed to the discovery provider. It is built
// from the tracked search definition; the provider performs deduplication and
// scoring against existing storage.
type SearchParams struct {
	Query             string              `json:"query"`
	Location          string              `json:"location"`
	RadiusMeters      int                 `json:"radius_meters"`
	PlaceType         *string             `json:"place_type,omitempty"`
	Filters           model.SearchFilters `json:"filters"`
	MinScoreThreshold int                 `json:"min_score_threshold"`
}

// SearchParamsFor derives provider search parameters from a tracked search.
func SearchParamsFor(s *model.TrackedSearch) SearchParams {
	return SearchParams{
		Query:             s.Query,
		Location:          s.Location,
		RadiusMeters:      s.RadiusMeters,
		PlaceType:         s.PlaceType,
		Filters:           s.Filters,
		MinScoreThreshold: s.MinScoreThreshold,
	}
}

// SearchOutcome is the provider's answer: how many candidate records matched,
// and how many of them were newly seen after upstream deduplication.
type SearchOutcome struct {
	TotalFound int `json:"total_found"`
	NewFound   int `json:"new_found"`
}

// ExecutionResult is what one executor invocation produced. Failures are
// reported in the log entry, never as a returned error.
type ExecutionResult struct {
	Log          *model.ExecutionLog
	Notification *model.Notification
}

// Succeeded reports whether the attempt completed without a provider or
// internal failure.
func (r ExecutionResult) Succeeded() bool {
	return r.Log != nil && r.Log.Status == model.ExecutionSuccess
}
