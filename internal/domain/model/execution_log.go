//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"
)

// TriggerKind distinguishes scheduled runs from user-requested ones.
type TriggerKind string

const (
	TriggerScheduled TriggerKind = "scheduled"
	TriggerManual    TriggerKind = "manual"
)

// Valid reports whether the trigger kind is supported.
func (k TriggerKind) Valid() bool {
	switch k {
	case TriggerScheduled, TriggerManual:
		return true
	default:
		return false
	}
}

// ExecutionStatus is the terminal outcome of one execution attempt.
type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "success"
	ExecutionFailed  ExecutionStatus = "failed"
)

// Valid reports whether the execution status is supported.
func (s ExecutionStatus) Valid() bool {
	switch s {
	case ExecutionSuccess, ExecutionFailed:
		return true
	default:
		return false
	}
}

// ExecutionLog is an immutable record of one execution attempt. Exactly one
// row is written per attempt, success or failure. TrackedSearchID is a
// reference, not a foreign key: the row outlives deletion of its parent.
type ExecutionLog struct {
	ID              string          `json:"id"                 db:"id"`
	TrackedSearchID string          `json:"tracked_search_id"  db:"tracked_search_id"`
	Trigger         TriggerKind     `json:"trigger"            db:"trigger"`
	Status          ExecutionStatus `json:"status"             db:"status"`
	TotalFound      int             `json:"total_found"        db:"total_found"`
	NewFound        int             `json:"new_found"          db:"new_found"`
	DurationMS      int64           `json:"duration_ms"        db:"duration_ms"`
	Error           *string         `json:"error,omitempty"    db:"error"`
	CreatedAt       time.Time       `json:"created_at"         db:"created_at"`
}

// Duration returns the execution wall time as a duration.
func (l *ExecutionLog) Duration() time.Duration {
	return time.Duration(l.DurationMS) * time.Millisecond
}

// ExecutionLogListOptions controls paging for listing execution logs.
type ExecutionLogListOptions struct {
	TrackedSearchID string
	Limit           int
	Offset          int
}
