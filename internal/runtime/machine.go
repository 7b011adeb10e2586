package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/cadence/pkg/domain"
)

// Machine is the per-trial phase state machine.
//
// It never blocks: every Tick computes the new state from the clock reading and
// the trigger events observed since the previous tick, then returns.
type Machine struct {
	trial  domain.Trial
	logger *slog.Logger

	phase   int
	start   float64
	frames  int
	started bool
	done    bool

	path *trajectory
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMachine creates the phase machine of a trial.
// Empty phase lists, unknown phase names and malformed moving trials are
// rejected with a *domain.ConfigurationError.
func NewMachine(trial domain.Trial, opts ...Option) (*Machine, error) {
	if err := trial.Validate(); err != nil {
		return nil, err
	}

	m := &Machine{
		trial:  trial,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if len(trial.Trajectory) > 0 {
		stim, ok := trial.Phase(domain.PhaseStim)
		if !ok || stim.Unbounded || stim.Unit != domain.UnitSeconds {
			return nil, domain.NewConfigurationError("phases",
				"trial %d: trajectory needs a stim phase measured in seconds", trial.Index)
		}
		m.path = newTrajectory(trial.Trajectory, stim.Duration)
	}
	return m, nil
}

// Trial returns the trial driven by the machine.
func (m *Machine) Trial() domain.Trial {
	return m.trial
}

// Done reports whether the machine reached its terminal state.
func (m *Machine) Done() bool {
	return m.done
}

// Tick advances the machine to clock time now.
//
// The first tick enters phase 0. A matching trigger ends the active phase
// (at most one phase per tick); time-driven phases then advance for as long
// as their duration has elapsed. Seconds phases chain from the theoretical end
// of the previous phase so rounding to display refreshes does not accumulate.
func (m *Machine) Tick(now float64, events []domain.TriggerEvent) domain.Tick {
	if m.done {
		return m.snapshot(now, nil)
	}

	var transitions []domain.Transition
	if !m.started {
		transitions = append(transitions, m.Begin(now))
	}

	for _, ev := range events {
		if m.current().Accepts(ev.Key) {
			transitions = append(transitions, m.advance(now, domain.CauseTrigger, ev.Key))
			break
		}
	}

	for !m.done {
		p := m.current()
		if !m.expired(p, now) {
			break
		}
		end := now
		if p.Unit == domain.UnitSeconds {
			end = m.start + p.Duration
		}
		transitions = append(transitions, m.advance(end, domain.CauseElapsed, ""))
	}

	if !m.done && m.current().Unit == domain.UnitFrames {
		m.frames++
	}
	return m.snapshot(now, transitions)
}

// Begin enters phase 0 at clock time at, which may lie before the next tick.
// Hosts chaining trials pass the end of the previous trial so that trial
// onsets do not drift with the display refresh. Begin is a no-op once the
// machine has started.
func (m *Machine) Begin(at float64) domain.Transition {
	if m.started {
		return domain.Transition{From: m.phase, To: m.phase, At: m.start, Cause: domain.CauseStart}
	}
	m.started = true
	m.start = at
	return domain.Transition{From: -1, To: 0, At: at, Cause: domain.CauseStart}
}

// Stop moves the machine to its terminal state immediately.
func (m *Machine) Stop(now float64) domain.Transition {
	t := domain.Transition{From: m.phase, To: -1, At: now, Cause: domain.CauseStopped}
	if m.done {
		t.From = -1
		return t
	}
	if !m.started {
		t.From = -1
	}
	m.started = true
	m.done = true
	m.logger.Debug("trial stopped", "trial", m.trial.Index, "phase", m.phase)
	return t
}

// State returns a snapshot of the machine.
func (m *Machine) State() domain.State {
	s := domain.State{
		TrialIndex: m.trial.Index,
		PhaseIndex: m.phase,
		PhaseStart: m.start,
	}
	if m.path != nil {
		s.Cursor = m.path.cursor
	}

	switch {
	case !m.started:
		s.Status = domain.StatusPending
	case m.done:
		s.Status = domain.StatusTerminated
		return s
	case m.current().Unbounded:
		s.Status = domain.StatusWaiting
	default:
		s.Status = domain.StatusActive
	}
	s.Phase = m.current().Name
	return s
}

func (m *Machine) current() domain.Phase {
	return m.trial.Phases[m.phase]
}

func (m *Machine) expired(p domain.Phase, now float64) bool {
	switch {
	case p.Unbounded:
		return false
	case p.Unit == domain.UnitFrames:
		return m.frames >= int(p.Duration)
	default:
		return now-m.start >= p.Duration
	}
}

func (m *Machine) advance(at float64, cause domain.TransitionCause, key string) domain.Transition {
	from := m.phase
	m.phase++
	m.frames = 0
	m.start = at

	to := m.phase
	if m.phase >= len(m.trial.Phases) {
		m.phase = len(m.trial.Phases) - 1
		m.done = true
		to = -1
	}

	m.logger.Debug("phase transition",
		"trial", m.trial.Index,
		"from", m.trial.Phases[from].Name,
		"to", to,
		"at", at,
		"cause", cause,
	)
	return domain.Transition{From: from, To: to, At: at, Cause: cause, Key: key}
}

func (m *Machine) snapshot(now float64, transitions []domain.Transition) domain.Tick {
	tick := domain.Tick{
		State:       m.State(),
		Transitions: transitions,
		Done:        m.done,
	}
	if m.done {
		return tick
	}

	p := m.current()
	tick.Phase = p
	tick.Elapsed = now - m.start
	if m.path != nil && p.Name == domain.PhaseStim {
		tick.Position = m.path.update(tick.Elapsed)
		tick.Moving = true
		tick.State.Cursor = m.path.cursor
	}
	return tick
}
