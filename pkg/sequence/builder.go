package sequence

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/geometry"
	"github.com/aretw0/cadence/pkg/iti"
	"github.com/aretw0/cadence/pkg/schedule"
)

// Builder assembles timelines. It owns the random generator shared by ITI
// sampling and block shuffling, so a seeded generator yields a reproducible plan.
type Builder struct {
	rng        *rand.Rand
	logger     *slog.Logger
	maxRetries int
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets a custom structured logger for the builder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMaxRetries bounds ITI batch rejection sampling.
func WithMaxRetries(n int) Option {
	return func(b *Builder) {
		b.maxRetries = n
	}
}

// NewBuilder creates a builder drawing from rng.
func NewBuilder(rng *rand.Rand, opts ...Option) *Builder {
	b := &Builder{
		rng:        rng,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxRetries: iti.DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates the request and produces the timeline.
func (b *Builder) Build(req Request) (*domain.Timeline, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.TriggerKey == "" {
		req.TriggerKey = domain.DefaultTriggerKey
	}
	if req.SkipKey == "" {
		req.SkipKey = domain.DefaultSkipKey
	}

	n := req.NTrials()
	itis, err := b.itis(req, n)
	if err != nil {
		return nil, err
	}

	sched, err := schedule.Reconcile(schedule.Plan{
		Start:    req.Start,
		NTrials:  n,
		Stim:     req.Stim,
		ITISum:   iti.Sum(itis),
		Outro:    req.Outro,
		Intended: req.Intended,
		Demo:     req.Demo,
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("timeline planned",
		"total", sched.Total,
		"padding", sched.Padding,
		"repeats", req.Repeats,
		"events", req.Events,
		"trials", n,
	)

	var content []domain.Trial
	switch req.Task {
	case TaskBlock:
		content = b.blockTrials(req, itis)
	default:
		content, err = b.trajectoryTrials(req)
		if err != nil {
			return nil, err
		}
	}

	trials := make([]domain.Trial, 0, n+2)
	trials = append(trials, domain.Trial{
		Index: 0,
		Kind:  domain.KindWait,
		Phases: []domain.Phase{
			domain.Unbounded(domain.PhaseDummy, req.TriggerKey),
			domain.Seconds(domain.PhaseIntro, req.Start),
		},
	})
	trials = append(trials, content...)
	trials = append(trials, domain.Trial{
		Index:  n + 1,
		Kind:   domain.KindOutro,
		Phases: []domain.Phase{domain.Seconds(domain.PhaseOutro, sched.Outro).WithKeys(req.SkipKey)},
	})

	tl := &domain.Timeline{
		Trials:   trials,
		ITIs:     itis,
		Schedule: sched,
		Events:   req.Events,
		Repeats:  req.Repeats,
	}
	if err := tl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timeline: %w", err)
	}
	return tl, nil
}

func (b *Builder) itis(req Request, n int) ([]float64, error) {
	switch {
	case req.Task == TaskTrajectory:
		// Moving trials run back to back.
		return iti.Fixed(n, 0), nil
	case req.StaticITI != nil:
		return iti.Fixed(n, *req.StaticITI), nil
	}

	params := req.ITI
	params.NTrials = n
	sampler := iti.NewSampler(b.rng, iti.WithMaxRetries(b.maxRetries), iti.WithLogger(b.logger))
	res, err := sampler.Sample(params)
	if err != nil {
		return nil, err
	}
	return res.ITIs, nil
}

func (b *Builder) blockTrials(req Request, itis []float64) []domain.Trial {
	order := Order(len(req.Events), req.Repeats)
	if req.Randomize {
		Shuffle(b.rng, order)
	}

	trials := make([]domain.Trial, len(order))
	for i, ev := range order {
		cond := req.Events[ev]
		phases := []domain.Phase{domain.Seconds(domain.PhaseStim, req.Stim)}
		if req.Cue != nil {
			phases = append(phases,
				domain.Seconds(domain.PhaseITI, itis[i]-*req.Cue),
				domain.Seconds(domain.PhaseCue, *req.Cue),
			)
		} else {
			phases = append(phases, domain.Seconds(domain.PhaseITI, itis[i]))
		}

		trials[i] = domain.Trial{
			Index:      i + 1,
			Kind:       domain.KindBlock,
			Condition:  cond,
			Phases:     phases,
			ITI:        itis[i],
			Parameters: map[string]any{"condition": string(cond)},
		}
	}
	return trials
}

func (b *Builder) trajectoryTrials(req Request) ([]domain.Trial, error) {
	if req.Randomize {
		b.logger.Warn("randomize is ignored for trajectory tasks; trials follow the anchor path")
	}

	positions := geometry.Positions(req.Anchors, req.Repeats)
	order := Cycle(len(req.Events), len(positions))

	trials := make([]domain.Trial, len(positions))
	for i := range positions {
		cond := req.Events[order[i]]
		steps := req.Steps[cond]
		from, to := geometry.Segment(positions, i)

		coords, err := geometry.Interpolate(from, to, steps)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i+1, err)
		}
		b.logger.Debug("trial path", "trial", i+1, "start", from, "end", to, "steps", steps)

		trials[i] = domain.Trial{
			Index:      i + 1,
			Kind:       domain.KindMoving,
			Condition:  cond,
			Phases:     []domain.Phase{domain.Seconds(domain.PhaseStim, req.Stim)},
			Trajectory: coords,
			Parameters: map[string]any{"condition": string(cond), "n_steps": steps},
		}
	}
	return trials, nil
}
