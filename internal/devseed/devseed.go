// Package devseed populates a development database with a handful of tracked
// searches so the scheduler and admin CLI have something to chew on. It is
// wired only when the app runs in dev mode and is idempotent: seeds that
// already exist are skipped, not duplicated.
package devseed

import (
	"context"
	"log/slog"

	"github.com/geoscout/geoscout/internal/domain/model"
	apperrors "github.com/geoscout/geoscout/internal/errors"
	"github.com/geoscout/geoscout/internal/service"
)

// seedSearches covers the interesting shapes: defaults only, tight filters,
// hourly cadence, and a quiet one that never notifies.
func seedSearches() []*model.CreateTrackedSearchRequest {
	return []*model.CreateTrackedSearchRequest{
		{
			Name:          "Plumbers Berlin",
			Query:         "plumber",
			Location:      "Berlin, DE",
			IntervalHours: 24,
		},
		{
			Name:          "Cafes Lisbon (well reviewed)",
			Query:         "cafe",
			Location:      "Lisbon, PT",
			IntervalHours: 12,
			Filters: model.SearchFilters{
				MinReviews: intPtr(25),
				MinRating:  floatPtr(4.2),
			},
		},
		{
			Name:              "Dentists Austin hourly",
			Query:             "dentist",
			Location:          "Austin, TX",
			IntervalHours:     1,
			RadiusMeters:      intPtr(15000),
			MinScoreThreshold: intPtr(70),
		},
		{
			Name:          "Bike shops Amsterdam (quiet)",
			Query:         "bicycle shop",
			Location:      "Amsterdam, NL",
			IntervalHours: 48,
			NotifyOnNew:   boolPtr(false),
		},
	}
}

// Run creates the development tracked searches through the automation
// service so validation and defaulting apply exactly as in production.
// Name conflicts mean a previous seeding already ran and are not errors.
func Run(ctx context.Context, automation *service.AutomationService, logger *slog.Logger) error {
	created, skipped := 0, 0
	for _, req := range seedSearches() {
		s, err := automation.CreateTrackedSearch(ctx, req)
		if err != nil {
			if apperrors.IsConflict(err) {
				skipped++
				continue
			}
			logger.ErrorContext(ctx, "dev seed failed", "name", req.Name, "error", err)
			return err
		}
		created++
		logger.InfoContext(ctx, "seeded tracked search",
			"id", s.ID, "name", s.Name, "interval_hours", s.IntervalHours)
	}
	logger.InfoContext(ctx, "dev seeding complete", "created", created, "skipped", skipped)
	return nil
}

func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
