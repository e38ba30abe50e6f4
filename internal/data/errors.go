package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Tracked search repository sentinels.
	ErrTrackedSearchNotFound   = errors.New("tracked search not found")
	ErrTrackedSearchNameExists = errors.New("tracked search name already exists")

	// Notification repository sentinels.
	ErrNotificationNotFound = errors.New("notification not found")
)
