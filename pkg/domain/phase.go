package domain

import (
	"fmt"
	"slices"
)

// PhaseName is the name of a trial segment.
type PhaseName string

const (
	PhaseDummy PhaseName = "dummy" // waits for the synchronization pulse
	PhaseIntro PhaseName = "intro"
	PhaseStim  PhaseName = "stim"
	PhaseITI   PhaseName = "iti"
	PhaseCue   PhaseName = "cue"
	PhaseOutro PhaseName = "outro"
)

// PhaseNames lists every phase name the runtime knows how to present.
var PhaseNames = []PhaseName{PhaseDummy, PhaseIntro, PhaseStim, PhaseITI, PhaseCue, PhaseOutro}

// Known reports whether n is a recognized phase name.
func (n PhaseName) Known() bool {
	return slices.Contains(PhaseNames, n)
}

// TimingUnit is the unit of a phase duration.
type TimingUnit string

const (
	UnitSeconds TimingUnit = "seconds"
	UnitFrames  TimingUnit = "frames"
)

// Phase is a named segment of a trial.
// An Unbounded phase never ends on elapsed time; it only ends on a trigger.
type Phase struct {
	Name      PhaseName  `json:"name"`
	Duration  float64    `json:"duration"`
	Unit      TimingUnit `json:"unit"`
	Unbounded bool       `json:"unbounded,omitempty"`

	// Keys end the phase early when observed. For an unbounded phase an empty
	// set accepts any key.
	Keys []string `json:"keys,omitempty"`
}

// Seconds creates a time-driven phase measured in seconds.
func Seconds(name PhaseName, duration float64) Phase {
	return Phase{Name: name, Duration: duration, Unit: UnitSeconds}
}

// Frames creates a time-driven phase measured in display frames.
func Frames(name PhaseName, count int) Phase {
	return Phase{Name: name, Duration: float64(count), Unit: UnitFrames}
}

// Unbounded creates a phase that advances only on one of keys.
func Unbounded(name PhaseName, keys ...string) Phase {
	return Phase{Name: name, Unit: UnitSeconds, Unbounded: true, Keys: keys}
}

// WithKeys returns a copy of p that also ends on any of keys.
func (p Phase) WithKeys(keys ...string) Phase {
	p.Keys = append(slices.Clone(p.Keys), keys...)
	return p
}

// Accepts reports whether key ends this phase.
func (p Phase) Accepts(key string) bool {
	if len(p.Keys) == 0 {
		return p.Unbounded
	}
	return slices.Contains(p.Keys, key)
}

// Seconds returns the phase duration in seconds, given the display refresh rate
// for frame-based phases. Unbounded phases return 0.
func (p Phase) Seconds(refreshRate float64) float64 {
	switch {
	case p.Unbounded:
		return 0
	case p.Unit == UnitFrames && refreshRate > 0:
		return p.Duration / refreshRate
	default:
		return p.Duration
	}
}

func (p Phase) String() string {
	if p.Unbounded {
		return fmt.Sprintf("%s(∞)", p.Name)
	}
	if p.Unit == UnitFrames {
		return fmt.Sprintf("%s(%gf)", p.Name, p.Duration)
	}
	return fmt.Sprintf("%s(%gs)", p.Name, p.Duration)
}

// ValidatePhases checks that a phase list can be driven by the runtime.
func ValidatePhases(phases []Phase) error {
	if len(phases) == 0 {
		return NewConfigurationError("phases", "phase list is empty")
	}
	for i, p := range phases {
		if !p.Name.Known() {
			return NewConfigurationError("phases", "unrecognized phase name %q at position %d", p.Name, i)
		}
		if p.Unbounded {
			continue
		}
		if p.Unit != UnitSeconds && p.Unit != UnitFrames {
			return NewConfigurationError("phases", "phase %q has unknown timing unit %q", p.Name, p.Unit)
		}
		if p.Duration < 0 {
			return NewConfigurationError("phases", "phase %q has negative duration %g", p.Name, p.Duration)
		}
	}
	return nil
}
