package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTrialStart EventType = "trial_start"
	EventTrialEnd   EventType = "trial_end"
	EventPhaseEnter EventType = "phase_enter"
	EventPhaseLeave EventType = "phase_leave"
	EventTrigger    EventType = "trigger"
	EventAbort      EventType = "abort"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
}

// TrialEvent represents the start or the end of a trial.
type TrialEvent struct {
	EventBase
	TrialIndex int       `json:"trial_index"`
	Kind       TrialKind `json:"kind"`
	Condition  Condition `json:"condition,omitempty"`
	Onset      float64   `json:"onset"`
}

// PhaseEvent represents entry into or exit from a phase.
type PhaseEvent struct {
	EventBase
	TrialIndex int             `json:"trial_index"`
	Condition  Condition       `json:"condition,omitempty"`
	PhaseIndex int             `json:"phase_index"`
	Phase      PhaseName       `json:"phase"`
	Onset      float64         `json:"onset"`
	Duration   float64         `json:"duration,omitempty"` // only set on leave
	Cause      TransitionCause `json:"cause,omitempty"`
}

// KeyEvent represents a trigger or key press observed during a trial.
type KeyEvent struct {
	EventBase
	TrialIndex int       `json:"trial_index"`
	Phase      PhaseName `json:"phase,omitempty"`
	Key        string    `json:"key"`
	Onset      float64   `json:"onset"`
}

// LifecycleHooks defines callbacks for runner observability.
type LifecycleHooks struct {
	OnTrialStart func(context.Context, *TrialEvent)
	OnTrialEnd   func(context.Context, *TrialEvent)
	OnPhaseEnter func(context.Context, *PhaseEvent)
	OnPhaseLeave func(context.Context, *PhaseEvent)
	OnKey        func(context.Context, *KeyEvent)
}

// ChainHooks combines several hook sets; each callback runs in order.
func ChainHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		out.OnTrialStart = chain(out.OnTrialStart, h.OnTrialStart)
		out.OnTrialEnd = chain(out.OnTrialEnd, h.OnTrialEnd)
		out.OnPhaseEnter = chain(out.OnPhaseEnter, h.OnPhaseEnter)
		out.OnPhaseLeave = chain(out.OnPhaseLeave, h.OnPhaseLeave)
		out.OnKey = chain(out.OnKey, h.OnKey)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// Record is the persisted form of an event, written to an EventLog.
type Record struct {
	Type       EventType       `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`
	TrialIndex int             `json:"trial_index"`
	Condition  Condition       `json:"condition,omitempty"`
	Phase      PhaseName       `json:"phase,omitempty"`
	Onset      float64         `json:"onset"`
	Duration   float64         `json:"duration,omitempty"`
	Cause      TransitionCause `json:"cause,omitempty"`
	Key        string          `json:"key,omitempty"`
}
