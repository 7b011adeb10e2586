package runner

import (
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// Behavior draws the stimuli of one trial kind for a tick.
// Behaviors are composed with the phase machine instead of extending it.
type Behavior interface {
	Draw(tick domain.Tick, trial domain.Trial, reg *Registry)
}

// BehaviorFunc adapts a function to the Behavior interface.
type BehaviorFunc func(tick domain.Tick, trial domain.Trial, reg *Registry)

func (f BehaviorFunc) Draw(tick domain.Tick, trial domain.Trial, reg *Registry) {
	f(tick, trial, reg)
}

// DefaultBehaviors returns the built-in behavior of every trial kind.
func DefaultBehaviors() map[domain.TrialKind]Behavior {
	return map[domain.TrialKind]Behavior{
		domain.KindWait:   BehaviorFunc(drawWait),
		domain.KindBlock:  BehaviorFunc(drawBlock),
		domain.KindMoving: BehaviorFunc(drawMoving),
		domain.KindOutro:  BehaviorFunc(drawOutro),
	}
}

func drawWait(tick domain.Tick, _ domain.Trial, reg *Registry) {
	switch tick.Phase.Name {
	case domain.PhaseDummy:
		draw(reg.Instructions)
	case domain.PhaseIntro:
		draw(reg.Fixation)
	}
}

func drawBlock(tick domain.Tick, trial domain.Trial, reg *Registry) {
	switch tick.Phase.Name {
	case domain.PhaseStim:
		if d, ok := reg.Stimulus(trial.Condition); ok {
			d.Draw()
		}
	case domain.PhaseCue:
		draw(reg.Cue)
	default:
		draw(reg.Fixation)
	}
}

func drawMoving(tick domain.Tick, trial domain.Trial, reg *Registry) {
	d, ok := reg.Stimulus(trial.Condition)
	if !ok {
		return
	}
	if p, ok := d.(ports.Positioner); ok && tick.Moving {
		p.SetPos(tick.Position)
	}
	d.Draw()
}

func drawOutro(_ domain.Tick, _ domain.Trial, reg *Registry) {
	draw(reg.Fixation)
}
