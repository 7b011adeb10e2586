package runner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/cadence/internal/runtime"
	"github.com/aretw0/cadence/pkg/domain"
)

// Session steps through a timeline one tick at a time.
// It is not safe for concurrent use.
type Session struct {
	r        *Runner
	timeline *domain.Timeline

	index   int
	machine *runtime.Machine
	entered float64 // start time of the active phase
	done    bool
	aborted bool
}

// NewSession prepares a session over the timeline. Nothing is drawn or
// emitted until the first Step.
func (r *Runner) NewSession(tl *domain.Timeline) (*Session, error) {
	if tl == nil {
		return nil, domain.NewConfigurationError("timeline", "timeline is nil")
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	if missing := r.Registry.Missing(tl); len(missing) > 0 {
		r.Logger.Warn("conditions without stimulus", "conditions", missing)
	}

	s := &Session{r: r, timeline: tl}
	m, err := s.newMachine(0)
	if err != nil {
		return nil, err
	}
	s.machine = m
	return s, nil
}

// Done reports whether every trial finished or the session was aborted.
func (s *Session) Done() bool {
	return s.done
}

// Aborted reports whether the session ended through Abort or an abort key.
func (s *Session) Aborted() bool {
	return s.aborted
}

// Trial returns the active trial.
func (s *Session) Trial() domain.Trial {
	return s.timeline.Trials[s.index]
}

// Step advances the session to clock time now.
//
// Key events are logged, then handed to the active trial. When a trial
// finishes, the next one begins at the exact end of the previous one and is
// advanced within the same step, so trial onsets do not drift. The tick of
// the trial active after the step is drawn and returned.
// An abort key stops the session and returns domain.ErrAborted.
func (s *Session) Step(ctx context.Context, now float64, events []domain.TriggerEvent) (domain.Tick, error) {
	if s.done {
		return domain.Tick{Done: true}, nil
	}

	for _, ev := range events {
		if slices.Contains(s.r.AbortKeys, ev.Key) {
			if err := s.Abort(ctx, now); err != nil {
				return domain.Tick{Done: true}, err
			}
			return domain.Tick{Done: true}, fmt.Errorf("%w: key %q", domain.ErrAborted, ev.Key)
		}
		if err := s.emitKey(ctx, ev); err != nil {
			return domain.Tick{}, err
		}
	}

	tick := s.machine.Tick(now, events)
	if err := s.dispatch(ctx, tick.Transitions); err != nil {
		return tick, err
	}

	for tick.Done {
		end := now
		if n := len(tick.Transitions); n > 0 {
			end = tick.Transitions[n-1].At
		}
		if err := s.emitTrial(ctx, domain.EventTrialEnd, end); err != nil {
			return tick, err
		}

		if s.index+1 >= len(s.timeline.Trials) {
			s.done = true
			s.r.Logger.Info("timeline finished", "trials", len(s.timeline.Trials), "at", end)
			return tick, nil
		}

		m, err := s.newMachine(s.index + 1)
		if err != nil {
			return tick, err
		}
		s.index++
		s.machine = m

		if err := s.dispatch(ctx, []domain.Transition{m.Begin(end)}); err != nil {
			return tick, err
		}
		tick = m.Tick(now, nil)
		if err := s.dispatch(ctx, tick.Transitions); err != nil {
			return tick, err
		}
	}

	trial := s.Trial()
	if b, ok := s.r.behaviors[trial.Kind]; ok && b != nil {
		b.Draw(tick, trial, s.r.Registry)
	}
	return tick, nil
}

// Abort stops the active trial and ends the session.
func (s *Session) Abort(ctx context.Context, now float64) error {
	if s.done {
		return nil
	}
	tr := s.machine.Stop(now)
	s.done = true
	s.aborted = true
	s.r.Logger.Warn("run aborted", "trial", s.index, "at", now)

	if err := s.dispatch(ctx, []domain.Transition{tr}); err != nil {
		return err
	}
	return s.record(ctx, domain.Record{
		Type:       domain.EventAbort,
		TrialIndex: s.index,
		Condition:  s.Trial().Condition,
		Onset:      now,
	})
}

func (s *Session) newMachine(i int) (*runtime.Machine, error) {
	m, err := runtime.NewMachine(s.timeline.Trials[i], runtime.WithLogger(s.r.Logger))
	if err != nil {
		return nil, fmt.Errorf("trial %d: %w", i, err)
	}
	return m, nil
}

// dispatch turns phase transitions into lifecycle events and records.
func (s *Session) dispatch(ctx context.Context, transitions []domain.Transition) error {
	trial := s.Trial()
	for _, tr := range transitions {
		if tr.Cause == domain.CauseStart {
			if err := s.emitTrial(ctx, domain.EventTrialStart, tr.At); err != nil {
				return err
			}
		}
		if tr.From >= 0 {
			if err := s.emitPhase(ctx, domain.EventPhaseLeave, trial, tr.From, s.entered, tr.At-s.entered, tr.Cause); err != nil {
				return err
			}
		}
		if tr.To >= 0 {
			s.entered = tr.At
			if err := s.emitPhase(ctx, domain.EventPhaseEnter, trial, tr.To, tr.At, 0, tr.Cause); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) emitTrial(ctx context.Context, typ domain.EventType, at float64) error {
	trial := s.Trial()
	ev := &domain.TrialEvent{
		EventBase:  s.base(typ),
		TrialIndex: trial.Index,
		Kind:       trial.Kind,
		Condition:  trial.Condition,
		Onset:      at,
	}

	hook := s.r.Hooks.OnTrialStart
	if typ == domain.EventTrialEnd {
		hook = s.r.Hooks.OnTrialEnd
	}
	if hook != nil {
		hook(ctx, ev)
	}
	s.r.Logger.Debug(string(typ), "trial", trial.Index, "kind", trial.Kind, "condition", trial.Condition, "onset", at)

	return s.record(ctx, domain.Record{
		Type:       typ,
		Timestamp:  ev.Timestamp,
		TrialIndex: trial.Index,
		Condition:  trial.Condition,
		Onset:      at,
	})
}

func (s *Session) emitPhase(ctx context.Context, typ domain.EventType, trial domain.Trial, idx int, onset, dur float64, cause domain.TransitionCause) error {
	ev := &domain.PhaseEvent{
		EventBase:  s.base(typ),
		TrialIndex: trial.Index,
		Condition:  trial.Condition,
		PhaseIndex: idx,
		Phase:      trial.Phases[idx].Name,
		Onset:      onset,
		Duration:   dur,
		Cause:      cause,
	}

	hook := s.r.Hooks.OnPhaseEnter
	if typ == domain.EventPhaseLeave {
		hook = s.r.Hooks.OnPhaseLeave
	}
	if hook != nil {
		hook(ctx, ev)
	}

	return s.record(ctx, domain.Record{
		Type:       typ,
		Timestamp:  ev.Timestamp,
		TrialIndex: trial.Index,
		Condition:  trial.Condition,
		Phase:      ev.Phase,
		Onset:      onset,
		Duration:   dur,
		Cause:      cause,
	})
}

func (s *Session) emitKey(ctx context.Context, tr domain.TriggerEvent) error {
	trial := s.Trial()
	state := s.machine.State()
	ev := &domain.KeyEvent{
		EventBase:  s.base(domain.EventTrigger),
		TrialIndex: trial.Index,
		Phase:      state.Phase,
		Key:        tr.Key,
		Onset:      tr.Timestamp,
	}
	if s.r.Hooks.OnKey != nil {
		s.r.Hooks.OnKey(ctx, ev)
	}
	s.r.Logger.Debug("key", slog.String("key", tr.Key), slog.Int("trial", trial.Index))

	return s.record(ctx, domain.Record{
		Type:       domain.EventTrigger,
		Timestamp:  ev.Timestamp,
		TrialIndex: trial.Index,
		Condition:  trial.Condition,
		Phase:      state.Phase,
		Onset:      tr.Timestamp,
		Key:        tr.Key,
	})
}

func (s *Session) base(typ domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: typ, RunID: s.r.RunID}
}

func (s *Session) record(ctx context.Context, rec domain.Record) error {
	if s.r.EventLog == nil || s.r.RunID == "" {
		return nil
	}
	if err := s.r.EventLog.Append(ctx, s.r.RunID, rec); err != nil {
		return fmt.Errorf("critical persistence error: %w", err)
	}
	return nil
}
