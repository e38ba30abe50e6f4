//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"
)

// NotificationType classifies a notification for the presentation layer.
type NotificationType string

const (
	// NotificationBatchComplete summarizes one completed execution that
	// produced new qualifying records.
	NotificationBatchComplete NotificationType = "batch_complete"
)

// Valid reports whether the notification type is supported.
func (t NotificationType) Valid() bool {
	return t == NotificationBatchComplete
}

// Notification is a single aggregate alert for one execution. At most one is
// created per execution, and only when the tracked search opted in and the
// run discovered new qualifying records. It references its tracked search and
// execution log by id only; deleting either never deletes the notification.
type Notification struct {
	ID              string           `json:"id"                 db:"id"`
	Type            NotificationType `json:"type"               db:"type"`
	Title           string           `json:"title"              db:"title"`
	Message         string           `json:"message"            db:"message"`
	TrackedSearchID string           `json:"tracked_search_id"  db:"tracked_search_id"`
	ExecutionLogID  string           `json:"execution_log_id"   db:"execution_log_id"`
	IsRead          bool             `json:"is_read"            db:"is_read"`
	CreatedAt       time.Time        `json:"created_at"         db:"created_at"`
}

// NotificationListOptions controls paging and read-state filtering.
type NotificationListOptions struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
