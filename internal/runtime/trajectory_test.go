package runtime_test

import (
	"testing"

	"github.com/aretw0/cadence/internal/runtime"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movingTrial(n int, duration float64) domain.Trial {
	coords := make([]domain.Point, n)
	for i := range coords {
		coords[i] = domain.Point{X: float64(i), Y: float64(i) / 2}
	}
	return domain.Trial{
		Index:      1,
		Kind:       domain.KindMoving,
		Condition:  domain.ConditionPursuit,
		Phases:     []domain.Phase{domain.Seconds(domain.PhaseStim, duration)},
		Trajectory: coords,
	}
}

func TestSwitchTimes(t *testing.T) {
	assert.Equal(t, []float64{-1.5, -1, -0.5}, runtime.SwitchTimes(2, 4))
	assert.Equal(t, []float64{-1}, runtime.SwitchTimes(2, 2))
	assert.Nil(t, runtime.SwitchTimes(2, 1))
	assert.Nil(t, runtime.SwitchTimes(0, 4))

	for _, n := range []int{2, 3, 7, 60, 144} {
		th := runtime.SwitchTimes(1.7, n)
		require.Len(t, th, n-1)
		for i := 1; i < len(th); i++ {
			assert.Less(t, th[i-1], th[i], "thresholds must be strictly increasing")
		}
		assert.Greater(t, th[0], -1.7)
		assert.Less(t, th[len(th)-1], 0.0)
	}
}

func TestSwitchTimes_DropsThresholdAtPhaseEnd(t *testing.T) {
	// With this many points the last offset is within tolerance of the duration.
	const n = 200_000
	th := runtime.SwitchTimes(2, n)
	assert.Len(t, th, n-2)
}

func TestMachine_TrajectoryPositions(t *testing.T) {
	m, err := runtime.NewMachine(movingTrial(5, 2))
	require.NoError(t, err)

	// Points switch every 0.4s.
	cases := []struct {
		now  float64
		want int
	}{
		{0, 0}, {0.2, 0}, {0.5, 1}, {0.7, 1}, {0.9, 2}, {1.3, 3}, {1.7, 4}, {1.95, 4},
	}
	for _, tc := range cases {
		tick := m.Tick(tc.now, nil)
		require.True(t, tick.Moving)
		assert.Equal(t, domain.Point{X: float64(tc.want), Y: float64(tc.want) / 2}, tick.Position, "at %gs", tc.now)
	}

	assert.True(t, m.Tick(2, nil).Done)
}

func TestMachine_TrajectoryCursorIsMonotonic(t *testing.T) {
	trial := movingTrial(30, 3)
	m, err := runtime.NewMachine(trial)
	require.NoError(t, err)

	last := trial.Trajectory[len(trial.Trajectory)-1]
	prev := 0
	// Irregular refreshes, including dropped frames.
	times := []float64{0, 0.016, 0.033, 0.09, 0.091, 0.4, 0.41, 1.2, 1.21, 1.9, 2.5, 2.51, 2.93, 2.97, 2.999}
	for _, now := range times {
		tick := m.Tick(now, nil)
		require.False(t, tick.Done)
		assert.GreaterOrEqual(t, tick.State.Cursor, prev)
		prev = tick.State.Cursor
		if now > 2.9 {
			assert.Equal(t, last, tick.Position)
		}
	}
	assert.Equal(t, 29, prev, "cursor exhausts every threshold")
}

func TestMachine_TrajectoryHoldsFinalPoint(t *testing.T) {
	trial := movingTrial(4, 2)
	m, err := runtime.NewMachine(trial)
	require.NoError(t, err)

	m.Tick(0, nil)
	for _, now := range []float64{1.6, 1.7, 1.8, 1.99} {
		tick := m.Tick(now, nil)
		assert.Equal(t, trial.Trajectory[3], tick.Position)
		assert.Equal(t, 3, tick.State.Cursor)
	}
}
