package domain

import "fmt"

// Point is a 2D stimulus position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// TrialKind selects the presentation behavior of a trial.
type TrialKind string

const (
	KindWait   TrialKind = "wait"   // leading trial, blocks on the trigger
	KindBlock  TrialKind = "block"  // motor block trial (stim + iti)
	KindMoving TrialKind = "moving" // moving-stimulus trial following a trajectory
	KindOutro  TrialKind = "outro"  // trailing rest period
)

// Trial is a single entry of the timeline.
type Trial struct {
	Index     int       `json:"index"`
	Kind      TrialKind `json:"kind"`
	Condition Condition `json:"condition,omitempty"`
	Phases    []Phase   `json:"phases"`

	// Trajectory is only set for moving-stimulus trials.
	Trajectory []Point `json:"trajectory,omitempty"`

	// ITI is the inter-trial interval assigned to this trial (0 for bracketing trials).
	ITI float64 `json:"iti,omitempty"`

	// Parameters are logged alongside the trial.
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Phase returns the phase with the given name, if present.
func (t Trial) Phase(name PhaseName) (Phase, bool) {
	for _, p := range t.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return Phase{}, false
}

// Duration returns the bounded duration of the trial in seconds.
func (t Trial) Duration(refreshRate float64) float64 {
	var total float64
	for _, p := range t.Phases {
		total += p.Seconds(refreshRate)
	}
	return total
}

// Validate checks the trial is well formed.
func (t Trial) Validate() error {
	if err := ValidatePhases(t.Phases); err != nil {
		return fmt.Errorf("trial %d: %w", t.Index, err)
	}
	if t.Condition != "" && !t.Condition.Valid() {
		return fmt.Errorf("trial %d: %w", t.Index,
			NewConfigurationError("condition", "unrecognized condition label %q", t.Condition))
	}
	if t.Kind == KindMoving {
		if len(t.Trajectory) == 0 {
			return fmt.Errorf("trial %d: %w", t.Index,
				NewConfigurationError("trajectory", "moving trial has no trajectory"))
		}
		if _, ok := t.Phase(PhaseStim); !ok {
			return fmt.Errorf("trial %d: %w", t.Index,
				NewConfigurationError("phases", "moving trial has no %q phase", PhaseStim))
		}
	}
	return nil
}
