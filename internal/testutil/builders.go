package testutil

import (
	"github.com/geoscout/geoscout/internal/domain/model"
)

// TrackedSearchRequestBuilder provides a fluent interface for building
// CreateTrackedSearchRequest objects for testing.
type TrackedSearchRequestBuilder struct {
	req *model.CreateTrackedSearchRequest
}

// NewTrackedSearchRequest creates a new TrackedSearchRequestBuilder with sensible defaults.
func NewTrackedSearchRequest() *TrackedSearchRequestBuilder {
	return &TrackedSearchRequestBuilder{
		req: &model.CreateTrackedSearchRequest{
			Name:          "Plumbers Berlin",
			Query:         "plumber",
			Location:      "Berlin, DE",
			IntervalHours: 24,
		},
	}
}

// WithName sets the search name.
func (b *TrackedSearchRequestBuilder) WithName(name string) *TrackedSearchRequestBuilder {
	b.req.Name = name
	return b
}

// WithQuery sets the search query.
func (b *TrackedSearchRequestBuilder) WithQuery(query string) *TrackedSearchRequestBuilder {
	b.req.Query = query
	return b
}

// WithLocation sets the search location.
func (b *TrackedSearchRequestBuilder) WithLocation(location string) *TrackedSearchRequestBuilder {
	b.req.Location = location
	return b
}

// WithRadiusMeters sets the search radius.
func (b *TrackedSearchRequestBuilder) WithRadiusMeters(radius int) *TrackedSearchRequestBuilder {
	b.req.RadiusMeters = &radius
	return b
}

// WithPlaceType sets the place type filter.
func (b *TrackedSearchRequestBuilder) WithPlaceType(placeType string) *TrackedSearchRequestBuilder {
	b.req.PlaceType = &placeType
	return b
}

// WithFilters sets the result filters.
func (b *TrackedSearchRequestBuilder) WithFilters(filters model.SearchFilters) *TrackedSearchRequestBuilder {
	b.req.Filters = filters
	return b
}

// WithIntervalHours sets the recurrence interval.
func (b *TrackedSearchRequestBuilder) WithIntervalHours(hours int) *TrackedSearchRequestBuilder {
	b.req.IntervalHours = hours
	return b
}

// WithMinScoreThreshold sets the lead score threshold.
func (b *TrackedSearchRequestBuilder) WithMinScoreThreshold(threshold int) *TrackedSearchRequestBuilder {
	b.req.MinScoreThreshold = &threshold
	return b
}

// WithNotifyOnNew sets the notification opt-in.
func (b *TrackedSearchRequestBuilder) WithNotifyOnNew(notify bool) *TrackedSearchRequestBuilder {
	b.req.NotifyOnNew = &notify
	return b
}

// Build returns the constructed CreateTrackedSearchRequest.
func (b *TrackedSearchRequestBuilder) Build() *model.CreateTrackedSearchRequest {
	return b.req
}

// Common test request presets

// HourlySearchRequest creates a request with a one-hour cadence.
func HourlySearchRequest(name string) *model.CreateTrackedSearchRequest {
	return NewTrackedSearchRequest().
		WithName(name).
		WithIntervalHours(1).
		Build()
}

// QuietSearchRequest creates a request with notifications opted out.
func QuietSearchRequest(name string) *model.CreateTrackedSearchRequest {
	return NewTrackedSearchRequest().
		WithName(name).
		WithNotifyOnNew(false).
		Build()
}

// FilteredSearchRequest creates a request with a ratings filter applied.
func FilteredSearchRequest(name string, minRating float64) *model.CreateTrackedSearchRequest {
	return NewTrackedSearchRequest().
		WithName(name).
		WithFilters(model.SearchFilters{MinRating: &minRating}).
		Build()
}
