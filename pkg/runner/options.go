package runner

import (
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithClock configures the experiment clock.
func WithClock(clock ports.Clock) Option {
	return func(r *Runner) {
		r.Clock = clock
	}
}

// WithTriggers configures the source of key and scanner events.
func WithTriggers(src ports.TriggerSource) Option {
	return func(r *Runner) {
		r.Triggers = src
	}
}

// WithDisplay configures the display that paces the loop.
func WithDisplay(d ports.Display) Option {
	return func(r *Runner) {
		r.Display = d
	}
}

// WithRegistry configures the stimuli drawn for each condition.
func WithRegistry(reg *Registry) Option {
	return func(r *Runner) {
		r.Registry = reg
	}
}

// WithBehavior overrides the drawing behavior of a trial kind.
func WithBehavior(kind domain.TrialKind, b Behavior) Option {
	return func(r *Runner) {
		r.behaviors[kind] = b
	}
}

// WithLifecycleHooks registers observability callbacks. Repeated calls chain the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.Hooks = domain.ChainHooks(r.Hooks, hooks)
	}
}

// WithEventLog persists trial and phase records under the given run ID.
func WithEventLog(log ports.EventLog, runID string) Option {
	return func(r *Runner) {
		r.EventLog = log
		r.RunID = runID
	}
}

// WithAbortKeys replaces the keys that abort the run.
func WithAbortKeys(keys ...string) Option {
	return func(r *Runner) {
		r.AbortKeys = keys
	}
}

// WithCloser registers a function run once when the runner closes.
func WithCloser(fn func() error) Option {
	return func(r *Runner) {
		r.closers = append(r.closers, fn)
	}
}
