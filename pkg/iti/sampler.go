package iti

import (
	"io"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/aretw0/cadence/pkg/domain"
)

// DefaultMaxRetries bounds the number of redrawn batches.
const DefaultMaxRetries = 10000

// Params describes the ITI distribution of an experiment.
type Params struct {
	Mean    float64 `json:"mean"`
	Minimal float64 `json:"minimal"`
	Maximal float64 `json:"maximal"`
	NTrials int     `json:"n_trials"`
	Leeway  float64 `json:"leeway"`
}

// Validate checks the parameters describe a samplable distribution.
func (p Params) Validate() error {
	switch {
	case p.NTrials <= 0:
		return domain.NewConfigurationError("n_trials", "must be positive, got %d", p.NTrials)
	case p.Minimal < 0:
		return domain.NewConfigurationError("minimal_iti_duration", "must not be negative, got %g", p.Minimal)
	case p.Minimal >= p.Maximal:
		return domain.NewConfigurationError("maximal_iti_duration", "must exceed minimal (%g), got %g", p.Minimal, p.Maximal)
	case p.Mean <= p.Minimal:
		return domain.NewConfigurationError("mean_iti_duration", "must exceed minimal (%g), got %g", p.Minimal, p.Mean)
	case p.Leeway < 0:
		return domain.NewConfigurationError("total_iti_duration_leeway", "must not be negative, got %g", p.Leeway)
	}
	return nil
}

// Band returns the accepted interval for the batch sum.
func (p Params) Band() (lo, hi float64) {
	total := float64(p.NTrials) * p.Mean
	return total - p.Leeway, total + p.Leeway
}

// Result is a sampled batch of ITIs.
type Result struct {
	ITIs    []float64 `json:"itis"`
	Sum     float64   `json:"sum"`
	Retries int       `json:"retries"`

	// Exhausted is true when the retry budget ran out and ITIs is the closest
	// batch seen rather than one inside the band.
	Exhausted bool `json:"exhausted,omitempty"`
}

// Err returns domain.ErrToleranceExhausted for exhausted results, nil otherwise.
func (r Result) Err() error {
	if r.Exhausted {
		return domain.ErrToleranceExhausted
	}
	return nil
}

// Sampler draws ITI batches from an owned random generator.
type Sampler struct {
	rng        *rand.Rand
	maxRetries int
	logger     *slog.Logger
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithMaxRetries sets the retry budget. Values below zero are ignored.
func WithMaxRetries(n int) Option {
	return func(s *Sampler) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithLogger sets a custom structured logger for the sampler.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSampler creates a sampler drawing from rng.
func NewSampler(rng *rand.Rand, opts ...Option) *Sampler {
	s := &Sampler{
		rng:        rng,
		maxRetries: DefaultMaxRetries,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample draws batches until one sums within the leeway band or the retry budget is spent.
func (s *Sampler) Sample(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	lo, hi := p.Band()
	batch := make([]float64, p.NTrials)
	var best []float64
	bestDistance := math.Inf(1)

	for retries := 0; ; retries++ {
		sum := s.draw(p, batch)
		distance := distanceToBand(sum, lo, hi)
		if distance == 0 {
			s.logger.Info("itis created", "total", sum, "retries", retries)
			return Result{ITIs: batch, Sum: sum, Retries: retries}, nil
		}

		if distance < bestDistance {
			bestDistance = distance
			best = append(best[:0], batch...)
		}

		if retries >= s.maxRetries {
			total := Sum(best)
			s.logger.Warn("iti leeway not met, using closest batch",
				"total", total,
				"band_low", lo,
				"band_high", hi,
				"retries", retries,
				"err", domain.ErrToleranceExhausted,
			)
			return Result{ITIs: best, Sum: total, Retries: retries, Exhausted: true}, nil
		}
	}
}

// draw fills batch with one shifted, right-censored exponential sample per trial.
func (s *Sampler) draw(p Params, batch []float64) float64 {
	scale := p.Mean - p.Minimal
	var sum float64
	for i := range batch {
		v := s.rng.ExpFloat64()*scale + p.Minimal
		if v > p.Maximal {
			v = p.Maximal
		}
		batch[i] = v
		sum += v
	}
	return sum
}

func distanceToBand(sum, lo, hi float64) float64 {
	switch {
	case sum < lo:
		return lo - sum
	case sum > hi:
		return sum - hi
	}
	return 0
}

// Fixed returns n identical intervals, used when a static ITI is configured.
func Fixed(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Sum adds up a batch of intervals.
func Sum(itis []float64) float64 {
	var total float64
	for _, v := range itis {
		total += v
	}
	return total
}
