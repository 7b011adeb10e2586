package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunEventLogContract runs a suite of tests to verify that an EventLog implementation
// adheres to the defined interface contract.
func RunEventLogContract(t *testing.T, log EventLog) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Append and List", func(t *testing.T) {
		records := []domain.Record{
			{Type: domain.EventTrialStart, TrialIndex: 1, Condition: domain.ConditionRight, Onset: 12.5},
			{Type: domain.EventPhaseEnter, TrialIndex: 1, Phase: domain.PhaseStim, Onset: 12.5},
			{Type: domain.EventPhaseLeave, TrialIndex: 1, Phase: domain.PhaseStim, Onset: 12.5, Duration: 2, Cause: domain.CauseElapsed},
		}
		for _, rec := range records {
			require.NoError(t, log.Append(ctx, runID, rec), "Append should not return error")
		}

		loaded, err := log.List(ctx, runID)
		require.NoError(t, err, "List should not return error")
		require.Len(t, loaded, len(records))
		for i := range records {
			assert.Equal(t, records[i].Type, loaded[i].Type, "records must keep insertion order")
			assert.Equal(t, records[i].Phase, loaded[i].Phase)
			assert.Equal(t, records[i].Onset, loaded[i].Onset)
		}
		assert.Equal(t, domain.CauseElapsed, loaded[2].Cause)
	})

	t.Run("List Non-Existent", func(t *testing.T) {
		_, err := log.List(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Runs", func(t *testing.T) {
		other := runID + "-other"
		require.NoError(t, log.Append(ctx, other, domain.Record{Type: domain.EventAbort}))
		defer func() {
			_ = log.Delete(ctx, other)
		}()

		runs, err := log.Runs(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, runID)
		assert.Contains(t, runs, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, log.Delete(ctx, runID), "Delete should not return error")

		_, err := log.List(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "List after Delete should return ErrRunNotFound")

		runs, err := log.Runs(ctx)
		require.NoError(t, err)
		assert.NotContains(t, runs, runID)
	})
}
