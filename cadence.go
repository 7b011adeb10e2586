package cadence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aretw0/cadence/pkg/config"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/runner"
	"github.com/aretw0/cadence/pkg/sequence"
)

// Experiment is the high-level entry point of the library. It binds the
// settings to a condition preset, plans the timeline once and runs it.
type Experiment struct {
	Settings *config.Settings
	Preset   config.Preset

	request    sequence.Request
	seed       uint64
	seeded     bool
	maxRetries int
	hooks      domain.LifecycleHooks
	logger     *slog.Logger

	timeline *domain.Timeline
}

// Option defines a functional option for configuring the Experiment.
type Option func(*Experiment)

// WithLogger sets a custom structured logger for the experiment.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Experiment) {
		e.logger = logger
	}
}

// WithSeed fixes the random seed. A seed in the settings file takes
// precedence.
func WithSeed(seed uint64) Option {
	return func(e *Experiment) {
		e.seed = seed
		e.seeded = true
	}
}

// WithLifecycleHooks registers observability hooks passed on to every run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Experiment) {
		e.hooks = domain.ChainHooks(e.hooks, hooks)
	}
}

// WithMaxRetries bounds the ITI resampling attempts of the planner.
func WithMaxRetries(n int) Option {
	return func(e *Experiment) {
		e.maxRetries = n
	}
}

// New creates an experiment for a condition preset (see config.PresetNames).
// A nil settings value uses config.Default().
func New(settings *config.Settings, preset string, opts ...Option) (*Experiment, error) {
	if settings == nil {
		settings = config.Default()
	}
	p, err := config.LookupPreset(preset)
	if err != nil {
		return nil, err
	}
	req, err := settings.Request(p.Name)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &Experiment{
		Settings: settings,
		Preset:   p,
		request:  req,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	switch {
	case settings.Design.Seed != nil:
		e.seed = *settings.Design.Seed
	case !e.seeded:
		e.seed = rand.Uint64()
	}
	return e, nil
}

// Seed returns the seed the timeline is planned with.
func (e *Experiment) Seed() uint64 {
	return e.seed
}

// Request returns the planning request derived from the settings.
func (e *Experiment) Request() sequence.Request {
	return e.request
}

// Plan builds the timeline. The result is cached, so repeated calls and
// Run see the same trial order and ITIs.
func (e *Experiment) Plan() (*domain.Timeline, error) {
	if e.timeline != nil {
		return e.timeline, nil
	}

	opts := []sequence.Option{sequence.WithLogger(e.logger)}
	if e.maxRetries > 0 {
		opts = append(opts, sequence.WithMaxRetries(e.maxRetries))
	}
	b := sequence.NewBuilder(rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15)), opts...)

	tl, err := b.Build(e.request)
	if err != nil {
		return nil, fmt.Errorf("failed to plan %s: %w", e.Preset.Name, err)
	}
	e.logger.Debug("experiment planned", "preset", e.Preset.Name, "seed", e.seed)
	e.timeline = tl
	return tl, nil
}

// Run plans the timeline if needed and runs it to completion. Runner options
// such as the clock, the display and the event log are supplied by the host.
func (e *Experiment) Run(ctx context.Context, opts ...runner.Option) error {
	tl, err := e.Plan()
	if err != nil {
		return err
	}
	base := []runner.Option{
		runner.WithLogger(e.logger),
		runner.WithLifecycleHooks(e.hooks),
	}
	return runner.New(append(base, opts...)...).Run(ctx, tl)
}

// RunID names a run the way the recording files are named:
// sub-<subject>_ses-<session>_run-<run>_task-<condition>.
// Condition aliases are resolved first.
func RunID(subject, session, run, condition string) string {
	return fmt.Sprintf("sub-%s_ses-%s_run-%s_task-%s", subject, session, run, config.Canonical(condition))
}

// UniqueRunID returns id unchanged when the log has no records for it, and
// otherwise id suffixed with the timestamp now, so a repeated run never
// appends to an earlier recording.
func UniqueRunID(ctx context.Context, log ports.EventLog, id string, now time.Time) (string, error) {
	_, err := log.List(ctx, id)
	if errors.Is(err, domain.ErrRunNotFound) {
		return id, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to check run %s: %w", id, err)
	}
	return id + now.Format("20060102150405"), nil
}
