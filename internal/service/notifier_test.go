package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoscout/geoscout/internal/domain/model"
)

func TestSummarizeBatch_NothingNew(t *testing.T) {
	t.Parallel()

	assert.Nil(t, SummarizeBatch(BatchSummaryParams{SearchName: "x", NewFound: 0}))
	assert.Nil(t, SummarizeBatch(BatchSummaryParams{SearchName: "x", NewFound: -1}))
}

func TestSummarizeBatch_SingleLead(t *testing.T) {
	t.Parallel()

	n := SummarizeBatch(BatchSummaryParams{
		SearchID:       testSearchID,
		SearchName:     "Plumbers Berlin",
		ExecutionLogID: "log-1",
		NewFound:       1,
	})
	require.NotNil(t, n)

	assert.Equal(t, model.NotificationBatchComplete, n.Type)
	assert.Equal(t, "1 new lead found", n.Title)
	assert.Equal(t, `Search "Plumbers Berlin" discovered 1 new qualifying lead.`, n.Message)
	assert.Equal(t, testSearchID, n.TrackedSearchID)
	assert.Equal(t, "log-1", n.ExecutionLogID)
	assert.False(t, n.IsRead)
}

func TestSummarizeBatch_ManyLeadsOneNotification(t *testing.T) {
	t.Parallel()

	n := SummarizeBatch(BatchSummaryParams{
		SearchID:   testSearchID,
		SearchName: "Plumbers Berlin",
		NewFound:   12,
	})
	require.NotNil(t, n)

	assert.Equal(t, "12 new leads found", n.Title)
	assert.Contains(t, n.Message, "12 new qualifying leads")
}
