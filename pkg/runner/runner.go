package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// Runner presents a timeline on a display, one refresh at a time.
type Runner struct {
	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	Clock    ports.Clock
	Triggers ports.TriggerSource
	Display  ports.Display
	Registry *Registry

	// Hooks receive trial, phase and key events as they happen.
	Hooks domain.LifecycleHooks

	// EventLog persists the records of the run under RunID.
	// If nil, runs are ephemeral.
	EventLog ports.EventLog
	RunID    string

	// AbortKeys stop the run immediately.
	AbortKeys []string

	behaviors map[domain.TrialKind]Behavior
	closers   []func() error
	closeOnce sync.Once
	closeErr  error
}

// New creates a Runner. A clock and a display are required before Run.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry:  NewRegistry(),
		AbortKeys: domain.DefaultAbortKeys,
		behaviors: DefaultBehaviors(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Registry == nil {
		r.Registry = NewRegistry()
	}
	return r
}

// Run presents the timeline until it finishes, an abort key is pressed or the
// context is cancelled. Closers run in every case.
//
// Each iteration waits for the display refresh, reads the clock, polls the
// triggers once and steps the session.
func (r *Runner) Run(ctx context.Context, tl *domain.Timeline) (err error) {
	defer func() {
		err = errors.Join(err, r.Close())
	}()

	if r.Clock == nil {
		return domain.NewConfigurationError("clock", "runner needs a clock")
	}
	if r.Display == nil {
		return domain.NewConfigurationError("display", "runner needs a display")
	}

	sess, err := r.NewSession(tl)
	if err != nil {
		return err
	}
	r.Logger.Info("run started", "run_id", r.RunID, "trials", len(tl.Trials), "planned", tl.Schedule.Total)

	for !sess.Done() {
		if ctx.Err() != nil {
			return r.cancel(ctx, sess)
		}
		if err := r.Display.Flip(ctx); err != nil {
			if ctx.Err() != nil {
				return r.cancel(ctx, sess)
			}
			return fmt.Errorf("display error: %w", err)
		}

		now := r.Clock.Now()
		var events []domain.TriggerEvent
		if r.Triggers != nil {
			events = r.Triggers.Poll()
		}

		if _, err := sess.Step(ctx, now, events); err != nil {
			return err
		}
	}

	r.Logger.Info("run finished", "run_id", r.RunID)
	return nil
}

func (r *Runner) cancel(ctx context.Context, sess *Session) error {
	// Records must still reach the log after cancellation.
	if err := sess.Abort(context.WithoutCancel(ctx), r.Clock.Now()); err != nil {
		return errors.Join(ctx.Err(), err)
	}
	return ctx.Err()
}

// Close runs the registered closers once, in registration order.
func (r *Runner) Close() error {
	r.closeOnce.Do(func() {
		var errs []error
		for _, fn := range r.closers {
			if err := fn(); err != nil {
				errs = append(errs, err)
			}
		}
		r.closeErr = errors.Join(errs...)
	})
	return r.closeErr
}
