package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/geoscout/geoscout/internal/domain/model"
)

func TestRenderExecutionLogIncludesFailureError(t *testing.T) {
	errText := "discovery provider unavailable: status 503"
	entry := &model.ExecutionLog{
		ID:              "log-123",
		TrackedSearchID: "search-123",
		Trigger:         model.TriggerManual,
		Status:          model.ExecutionFailed,
		DurationMS:      420,
		Error:           &errText,
	}

	var buf bytes.Buffer
	require.NoError(t, renderExecutionLog(&buf, entry))

	out := buf.String()
	require.Contains(t, out, "Execution log-123")
	require.Contains(t, out, "Status:   failed")
	require.Contains(t, out, "420ms")
	require.Contains(t, out, "discovery provider unavailable")
}

func TestRenderSearchesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSearches(&buf, nil))
	require.Contains(t, buf.String(), "(no tracked searches)")
}

func TestRenderSearchesTable(t *testing.T) {
	lastRun := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	searches := []*model.TrackedSearch{
		{
			ID:            "search-123",
			Name:          "Plumbers Berlin",
			IsActive:      true,
			IntervalHours: 24,
			NextRunAt:     lastRun.Add(24 * time.Hour),
			LastRunAt:     &lastRun,
			TotalRuns:     7,
			TotalNewFound: 19,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, renderSearches(&buf, searches))

	out := buf.String()
	require.Contains(t, out, "Plumbers Berlin")
	require.Contains(t, out, "24h")
	require.Contains(t, out, "2025-06-02T12:00:00Z")
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStats(&buf, &model.AutomationStats{
		TotalSearches:       10,
		ActiveSearches:      7,
		TotalExecutions:     134,
		UnreadNotifications: 3,
	}))

	out := buf.String()
	require.Contains(t, out, "10 (7 active)")
	require.Contains(t, out, "Executions:           134")
	require.Contains(t, out, "Unread notifications: 3")
}
