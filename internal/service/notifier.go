package service

import (
	"fmt"

	"github.com/geoscout/geoscout/internal/domain/model"
)

// BatchSummaryParams groups parameters for SummarizeBatch.
type BatchSummaryParams struct {
	SearchID       string
	SearchName     string
	ExecutionLogID string
	NewFound       int
}

// SummarizeBatch builds the single aggregated notification for one execution.
// Pure construction: the caller persists the result. Returns nil when the run
// found nothing new, so a notification is never fabricated for an empty batch.
// The message always carries both the count and the tracked search name, which
// keeps notifications tellable apart when several searches fire close together.
func SummarizeBatch(p BatchSummaryParams) *model.Notification {
	if p.NewFound <= 0 {
		return nil
	}

	noun := "leads"
	if p.NewFound == 1 {
		noun = "lead"
	}

	return &model.Notification{
		Type:            model.NotificationBatchComplete,
		Title:           fmt.Sprintf("%d new %s found", p.NewFound, noun),
		Message:         fmt.Sprintf("Search %q discovered %d new qualifying %s.", p.SearchName, p.NewFound, noun),
		TrackedSearchID: p.SearchID,
		ExecutionLogID:  p.ExecutionLogID,
	}
}
