// Package mocks provides mock implementations for testing the geoscout
// automation engine.
//
// This package uses go.uber.org/mock (gomock) for type-safe mocks of the
// repository and collaborator interfaces in internal/core. The committed
// *_mock.go files match mockgen's output; regenerate them after interface
// changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	t.Cleanup(ctrl.Finish)
//	mockRepo := mocks.NewMockTrackedSearchRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), "id").Return(search, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tracked_search_repository_mock.go github.com/geoscout/geoscout/internal/core TrackedSearchRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=execution_log_repository_mock.go github.com/geoscout/geoscout/internal/core ExecutionLogRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=notification_repository_mock.go github.com/geoscout/geoscout/internal/core NotificationRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/geoscout/geoscout/internal/core CacheRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=discovery_provider_mock.go github.com/geoscout/geoscout/internal/core DiscoveryProvider

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=rate_limiter_mock.go github.com/geoscout/geoscout/internal/core RateLimiter

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=search_runner_mock.go github.com/geoscout/geoscout/internal/core SearchRunner
