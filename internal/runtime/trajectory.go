package runtime

import (
	"math"

	"github.com/aretw0/cadence/pkg/domain"
)

// SwitchTimes returns the presentation-time thresholds at which a stimulus
// moves to its next trajectory point.
//
// The duration is split evenly across the n points. Thresholds are negative
// offsets from the end of the phase (presentation time counts up from
// -duration to 0) so they are strictly increasing. When the last offset
// coincides with the duration itself it is dropped, otherwise the stimulus
// would advance twice at the phase boundary.
func SwitchTimes(duration float64, n int) []float64 {
	if n <= 1 || duration <= 0 {
		return nil
	}

	step := duration / float64(n)
	times := make([]float64, 0, n-1)
	for k := 1; k < n; k++ {
		times = append(times, float64(k)*step)
	}
	if isClose(times[len(times)-1], duration) {
		times = times[:len(times)-1]
	}

	thresholds := make([]float64, len(times))
	for i, t := range times {
		thresholds[len(times)-1-i] = -t
	}
	return thresholds
}

// isClose mirrors the usual relative/absolute float tolerance.
func isClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}

type trajectory struct {
	coords     []domain.Point
	duration   float64
	thresholds []float64
	cursor     int
}

func newTrajectory(coords []domain.Point, duration float64) *trajectory {
	return &trajectory{
		coords:     coords,
		duration:   duration,
		thresholds: SwitchTimes(duration, len(coords)),
	}
}

// update moves the cursor past every threshold reached at elapsed seconds into
// the phase and returns the current position. The cursor never moves back.
func (t *trajectory) update(elapsed float64) domain.Point {
	presentation := elapsed - t.duration
	for t.cursor < len(t.thresholds) && presentation >= t.thresholds[t.cursor] {
		t.cursor++
	}
	if t.cursor < len(t.thresholds) {
		return t.coords[t.cursor]
	}
	return t.coords[len(t.coords)-1]
}
