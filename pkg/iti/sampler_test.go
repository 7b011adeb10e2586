package iti_test

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/iti"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestSampler_Properties(t *testing.T) {
	cases := []struct {
		name   string
		params iti.Params
	}{
		{"default design", iti.Params{Mean: 6, Minimal: 3, Maximal: 18, NTrials: 20, Leeway: 5}},
		{"short block", iti.Params{Mean: 4, Minimal: 2, Maximal: 8, NTrials: 6, Leeway: 2}},
		{"single trial", iti.Params{Mean: 5, Minimal: 1, Maximal: 30, NTrials: 1, Leeway: 4}},
		{"many trials", iti.Params{Mean: 10, Minimal: 8, Maximal: 14, NTrials: 60, Leeway: 6}},
	}

	for _, tc := range cases {
		for seed := uint64(1); seed <= 5; seed++ {
			t.Run(tc.name, func(t *testing.T) {
				sampler := iti.NewSampler(seeded(seed))
				res, err := sampler.Sample(tc.params)
				require.NoError(t, err)
				require.False(t, res.Exhausted)
				require.NoError(t, res.Err())

				assert.Len(t, res.ITIs, tc.params.NTrials)
				for _, v := range res.ITIs {
					assert.GreaterOrEqual(t, v, tc.params.Minimal)
					assert.LessOrEqual(t, v, tc.params.Maximal)
				}

				target := float64(tc.params.NTrials) * tc.params.Mean
				assert.LessOrEqual(t, math.Abs(iti.Sum(res.ITIs)-target), tc.params.Leeway)
				assert.Equal(t, iti.Sum(res.ITIs), res.Sum)
			})
		}
	}
}

func TestSampler_Deterministic(t *testing.T) {
	params := iti.Params{Mean: 6, Minimal: 3, Maximal: 18, NTrials: 12, Leeway: 3}

	first, err := iti.NewSampler(seeded(42)).Sample(params)
	require.NoError(t, err)
	second, err := iti.NewSampler(seeded(42)).Sample(params)
	require.NoError(t, err)

	assert.Equal(t, first.ITIs, second.ITIs)
	assert.Equal(t, first.Retries, second.Retries)
}

func TestSampler_ExhaustedAcceptsClosestBatch(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// A zero leeway is practically impossible to hit with a continuous distribution.
	params := iti.Params{Mean: 6, Minimal: 3, Maximal: 18, NTrials: 10, Leeway: 0}
	sampler := iti.NewSampler(seeded(7), iti.WithMaxRetries(5), iti.WithLogger(logger))

	res, err := sampler.Sample(params)
	require.NoError(t, err, "exhaustion is recoverable")
	assert.True(t, res.Exhausted)
	assert.ErrorIs(t, res.Err(), domain.ErrToleranceExhausted)
	assert.Equal(t, 5, res.Retries)
	assert.Len(t, res.ITIs, 10)
	for _, v := range res.ITIs {
		assert.GreaterOrEqual(t, v, params.Minimal)
		assert.LessOrEqual(t, v, params.Maximal)
	}
	assert.Contains(t, buf.String(), "iti leeway not met")
}

func TestSampler_ClosestBatchIsBest(t *testing.T) {
	params := iti.Params{Mean: 6, Minimal: 3, Maximal: 18, NTrials: 10, Leeway: 0}
	target := float64(params.NTrials) * params.Mean

	// Replay the same stream by hand to find the best distance among the drawn batches.
	replay := seeded(11)
	best := math.Inf(1)
	for range 21 {
		var sum float64
		for range params.NTrials {
			v := replay.ExpFloat64()*(params.Mean-params.Minimal) + params.Minimal
			sum += math.Min(v, params.Maximal)
		}
		best = math.Min(best, math.Abs(sum-target))
	}

	res, err := iti.NewSampler(seeded(11), iti.WithMaxRetries(20)).Sample(params)
	require.NoError(t, err)
	require.True(t, res.Exhausted)
	assert.InDelta(t, best, math.Abs(res.Sum-target), 1e-9)
}

func TestSampler_InvalidParams(t *testing.T) {
	cases := map[string]iti.Params{
		"no trials":        {Mean: 6, Minimal: 3, Maximal: 18, NTrials: 0},
		"minimal >= max":   {Mean: 6, Minimal: 18, Maximal: 18, NTrials: 3},
		"mean <= minimal":  {Mean: 3, Minimal: 3, Maximal: 18, NTrials: 3},
		"negative leeway":  {Mean: 6, Minimal: 3, Maximal: 18, NTrials: 3, Leeway: -1},
		"negative minimal": {Mean: 6, Minimal: -1, Maximal: 18, NTrials: 3},
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := iti.NewSampler(seeded(1)).Sample(params)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestFixed(t *testing.T) {
	itis := iti.Fixed(4, 2.5)
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, itis)
	assert.Equal(t, 10.0, iti.Sum(itis))
}
