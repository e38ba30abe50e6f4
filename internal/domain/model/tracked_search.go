//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTrackedSearchNameLen  = 255
	maxTrackedSearchQueryLen = 500

	// DefaultMinScoreThreshold is applied when a create request omits the threshold.
	DefaultMinScoreThreshold = 50
	// DefaultRadiusMeters is applied when a create request omits the search radius.
	DefaultRadiusMeters = 5000

	minScore = 0
	maxScore = 100
)

// SearchFilters narrows which discovered records qualify. All fields are
// optional; nil means "no constraint". Persisted as JSONB alongside the
// tracked search definition.
type SearchFilters struct {
	MinReviews *int     `json:"min_reviews,omitempty"`
	MaxReviews *int     `json:"max_reviews,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty"`
	MaxRating  *float64 `json:"max_rating,omitempty"`
	HasWebsite *bool    `json:"has_website,omitempty"`
	HasPhone   *bool    `json:"has_phone,omitempty"`
}

// Validate checks internal consistency of the filter set.
func (f *SearchFilters) Validate() error {
	if f == nil {
		return nil
	}
	if f.MinReviews != nil && *f.MinReviews < 0 {
		return errors.New("min_reviews cannot be negative")
	}
	if f.MaxReviews != nil && *f.MaxReviews < 0 {
		return errors.New("max_reviews cannot be negative")
	}
	if f.MinReviews != nil && f.MaxReviews != nil && *f.MinReviews > *f.MaxReviews {
		return errors.New("min_reviews cannot exceed max_reviews")
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > 5) {
		return errors.New("min_rating must be between 0 and 5")
	}
	if f.MaxRating != nil && (*f.MaxRating < 0 || *f.MaxRating > 5) {
		return errors.New("max_rating must be between 0 and 5")
	}
	if f.MinRating != nil && f.MaxRating != nil && *f.MinRating > *f.MaxRating {
		return errors.New("min_rating cannot exceed max_rating")
	}
	return nil
}

// TrackedSearch is a persisted, recurring discovery job definition together
// with its scheduling cursor.
//
// While IsActive is true, NextRunAt is always set and never moves backwards
// across scheduled runs. The cursor fields (NextRunAt, LastRunAt, TotalRuns,
// TotalNewFound, LastNewCount) are mutated only through the repository's
// AdvanceCursor operation.
type TrackedSearch struct {
	ID                string        `json:"id"                  db:"id"`
	Name              string        `json:"name"                db:"name"`
	Query             string        `json:"query"               db:"query"`
	Location          string        `json:"location"            db:"location"`
	RadiusMeters      int           `json:"radius_meters"       db:"radius_meters"`
	PlaceType         *string       `json:"place_type,omitempty" db:"place_type"`
	Filters           SearchFilters `json:"filters"             db:"filters"`
	IntervalHours     int           `json:"interval_hours"      db:"interval_hours"`
	MinScoreThreshold int           `json:"min_score_threshold" db:"min_score_threshold"`
	NotifyOnNew       bool          `json:"notify_on_new"       db:"notify_on_new"`
	IsActive          bool          `json:"is_active"           db:"is_active"`
	NextRunAt         time.Time     `json:"next_run_at"         db:"next_run_at"`
	LastRunAt         *time.Time    `json:"last_run_at,omitempty" db:"last_run_at"`
	TotalRuns         int           `json:"total_runs"          db:"total_runs"`
	TotalNewFound     int           `json:"total_new_found"     db:"total_new_found"`
	LastNewCount      int           `json:"last_new_count"      db:"last_new_count"`
	CreatedAt         time.Time     `json:"created_at"          db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"          db:"updated_at"`
}

// Interval returns the recurrence interval as a duration.
func (s *TrackedSearch) Interval() time.Duration {
	return time.Duration(s.IntervalHours) * time.Hour
}

// Due reports whether the search is eligible for a scheduled run at now.
func (s *TrackedSearch) Due(now time.Time) bool {
	return s.IsActive && !s.NextRunAt.After(now)
}

// CreateTrackedSearchRequest represents parameters to create a TrackedSearch.
type CreateTrackedSearchRequest struct {
	Name              string        `json:"name"`
	Query             string        `json:"query"`
	Location          string        `json:"location"`
	RadiusMeters      *int          `json:"radius_meters,omitempty"`
	PlaceType         *string       `json:"place_type,omitempty"`
	Filters           SearchFilters `json:"filters"`
	IntervalHours     int           `json:"interval_hours"`
	MinScoreThreshold *int          `json:"min_score_threshold,omitempty"`
	NotifyOnNew       *bool         `json:"notify_on_new,omitempty"`
}

// Validate validates CreateTrackedSearchRequest and applies defaults for
// omitted optional fields.
func (r *CreateTrackedSearchRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxTrackedSearchNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		return errors.New("query is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Query) > maxTrackedSearchQueryLen {
		return errors.New("query cannot exceed 500 characters")
	}
	r.Location = strings.TrimSpace(r.Location)
	if r.Location == "" {
		return errors.New("location is required and cannot be empty")
	}
	if r.IntervalHours < 1 {
		return errors.New("interval_hours must be >= 1")
	}
	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		return errors.New("radius_meters must be > 0")
	}
	if r.MinScoreThreshold != nil && (*r.MinScoreThreshold < minScore || *r.MinScoreThreshold > maxScore) {
		return errors.New("min_score_threshold must be between 0 and 100")
	}
	if err := r.Filters.Validate(); err != nil {
		return err
	}
	return nil
}

// Radius returns the requested radius or the default when omitted.
func (r *CreateTrackedSearchRequest) Radius() int {
	if r.RadiusMeters != nil {
		return *r.RadiusMeters
	}
	return DefaultRadiusMeters
}

// Threshold returns the requested score threshold or the default when omitted.
func (r *CreateTrackedSearchRequest) Threshold() int {
	if r.MinScoreThreshold != nil {
		return *r.MinScoreThreshold
	}
	return DefaultMinScoreThreshold
}

// Notify returns the requested notify flag, defaulting to true.
func (r *CreateTrackedSearchRequest) Notify() bool {
	if r.NotifyOnNew != nil {
		return *r.NotifyOnNew
	}
	return true
}

// TrackedSearchListOptions controls paging for listing tracked searches.
type TrackedSearchListOptions struct {
	Limit      int
	Offset     int
	ActiveOnly bool
}

// AutomationStats is the aggregate view exposed to the presentation layer.
type AutomationStats struct {
	TotalSearches       int `json:"total_searches"`
	ActiveSearches      int `json:"active_searches"`
	TotalExecutions     int `json:"total_executions"`
	UnreadNotifications int `json:"unread_notifications"`
}
