package sequence

import (
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/iti"
)

// Task selects how content trials are built.
type Task string

const (
	TaskBlock      Task = "block"
	TaskTrajectory Task = "trajectory"
)

// Request describes the timeline to build.
type Request struct {
	Task      Task
	Events    []domain.Condition
	Repeats   int
	Randomize bool

	Start float64
	Stim  float64
	Outro float64

	// Intended is the target total duration; nil disables padding.
	Intended *float64
	Demo     bool

	// StaticITI replaces sampled ITIs with a constant (block tasks).
	StaticITI *float64
	// ITI describes the sampled distribution; NTrials is filled by the builder.
	ITI iti.Params
	// Cue carves a cue phase out of the end of each ITI.
	Cue *float64

	// Anchors are the waypoints of trajectory tasks.
	Anchors []domain.Point
	// Steps is the number of interpolation steps per condition.
	Steps map[domain.Condition]int

	TriggerKey string
	SkipKey    string
}

// NTrials returns the number of content trials the request produces.
func (r Request) NTrials() int {
	if r.Task == TaskTrajectory {
		return r.Repeats * len(r.Anchors)
	}
	return r.Repeats * len(r.Events)
}

// Validate checks the request before anything is sampled.
func (r Request) Validate() error {
	if r.Task != TaskBlock && r.Task != TaskTrajectory {
		return domain.NewConfigurationError("task", "unknown task %q", r.Task)
	}
	if len(r.Events) == 0 {
		return domain.NewConfigurationError("condition", "no conditions selected")
	}
	for _, c := range r.Events {
		if !c.Valid() {
			return domain.NewConfigurationError("condition", "unrecognized condition label %q", c)
		}
	}
	if r.Repeats <= 0 {
		return domain.NewConfigurationError("n_repeats", "must be positive, got %d", r.Repeats)
	}
	if r.Start < 0 {
		return domain.NewConfigurationError("start_duration", "must not be negative, got %g", r.Start)
	}
	if r.Stim <= 0 {
		return domain.NewConfigurationError("stim_duration", "must be positive, got %g", r.Stim)
	}
	if r.Outro < 0 {
		return domain.NewConfigurationError("end_duration", "must not be negative, got %g", r.Outro)
	}

	switch r.Task {
	case TaskBlock:
		return r.validateBlock()
	default:
		return r.validateTrajectory()
	}
}

func (r Request) validateBlock() error {
	for _, c := range r.Events {
		if c.Moving() {
			return domain.NewConfigurationError("condition", "condition %q needs a trajectory task", c)
		}
	}
	if r.StaticITI != nil && *r.StaticITI < 0 {
		return domain.NewConfigurationError("static_isi", "must not be negative, got %g", *r.StaticITI)
	}
	if r.Cue == nil {
		return nil
	}

	shortest := r.ITI.Minimal
	if r.StaticITI != nil {
		shortest = *r.StaticITI
	}
	if *r.Cue <= 0 || *r.Cue >= shortest {
		return domain.NewConfigurationError("cue_time", "must lie within (0, %g), got %g", shortest, *r.Cue)
	}
	return nil
}

func (r Request) validateTrajectory() error {
	if len(r.Anchors) < 2 {
		return domain.NewConfigurationError("star_anchors", "need at least two anchors, got %d", len(r.Anchors))
	}
	for _, c := range r.Events {
		if !c.Moving() {
			return domain.NewConfigurationError("condition", "condition %q cannot follow a trajectory", c)
		}
		if r.Steps[c] < 1 {
			return domain.NewConfigurationError("steps_"+string(c), "must be positive, got %d", r.Steps[c])
		}
	}
	return nil
}
