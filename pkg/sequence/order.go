package sequence

import "math/rand/v2"

// Order tiles the event indices [0, nEvents) repeats times:
// 2 events repeated 3 times gives [0 1 0 1 0 1].
func Order(nEvents, repeats int) []int {
	out := make([]int, 0, nEvents*repeats)
	for range repeats {
		for ev := range nEvents {
			out = append(out, ev)
		}
	}
	return out
}

// Cycle returns n indices cycling through [0, nEvents).
func Cycle(nEvents, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i % nEvents
	}
	return out
}

// Shuffle permutes order uniformly at random. Only positions change; the
// multiset of indices is preserved.
func Shuffle(rng *rand.Rand, order []int) {
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
}
