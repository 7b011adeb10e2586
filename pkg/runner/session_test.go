package runner_test

import (
	"context"
	"testing"

	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StepDrivenByHost(t *testing.T) {
	ctx := context.Background()
	log := memory.NewEventLog()
	r := runner.New(runner.WithEventLog(log, "run"))

	sess, err := r.NewSession(blockTimeline())
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Trial().Index)

	tick, err := sess.Step(ctx, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaiting, tick.State.Status)

	// The wait phase never ends on time alone.
	for now := 1.0; now < 1e6; now *= 10 {
		tick, err = sess.Step(ctx, now, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseDummy, tick.Phase.Name)
	}

	tick, err = sess.Step(ctx, 1e6, []domain.TriggerEvent{{Key: "t", Timestamp: 1e6}})
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseIntro, tick.Phase.Name)

	// A late host step crosses every remaining trial at once; onsets stay exact.
	tick, err = sess.Step(ctx, 1e6+100, nil)
	require.NoError(t, err)
	assert.True(t, tick.Done)
	assert.True(t, sess.Done())
	assert.False(t, sess.Aborted())

	records, err := log.List(ctx, "run")
	require.NoError(t, err)
	var onsets []float64
	for _, rec := range records {
		if rec.Type == domain.EventTrialStart {
			onsets = append(onsets, rec.Onset-1e6)
		}
	}
	assert.Equal(t, []float64{-1e6, 1, 4, 7}, onsets)

	// Further steps are inert.
	tick, err = sess.Step(ctx, 2e6, []domain.TriggerEvent{{Key: "escape"}})
	require.NoError(t, err)
	assert.True(t, tick.Done)
}

func TestSession_Abort(t *testing.T) {
	ctx := context.Background()
	sess, err := runner.New().NewSession(blockTimeline())
	require.NoError(t, err)

	_, err = sess.Step(ctx, 0, nil)
	require.NoError(t, err)

	require.NoError(t, sess.Abort(ctx, 0.5))
	assert.True(t, sess.Done())
	assert.True(t, sess.Aborted())
	require.NoError(t, sess.Abort(ctx, 0.6), "abort is idempotent")
}

func TestSession_NilTimeline(t *testing.T) {
	_, err := runner.New().NewSession(nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRegistry_Missing(t *testing.T) {
	reg := runner.NewRegistry().Register(domain.ConditionRight, &counter{})
	assert.Equal(t, []domain.Condition{domain.ConditionLeft}, reg.Missing(blockTimeline()))

	d, ok := reg.Stimulus(domain.ConditionRight)
	assert.True(t, ok)
	assert.NotNil(t, d)

	_, ok = reg.Stimulus(domain.ConditionBoth)
	assert.False(t, ok)
}
