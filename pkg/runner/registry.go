package runner

import (
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
)

// Registry maps trial conditions and screens to the stimuli that render them.
// A nil entry draws nothing.
type Registry struct {
	stimuli map[domain.Condition]ports.Drawable

	// Instructions is shown while waiting for the trigger.
	Instructions ports.Drawable
	// Fixation is shown during the intro, the ITIs and the outro.
	Fixation ports.Drawable
	// Cue announces the next trial at the end of the ITI.
	Cue ports.Drawable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stimuli: make(map[domain.Condition]ports.Drawable)}
}

// Register binds a stimulus to a condition, replacing any previous binding.
func (r *Registry) Register(cond domain.Condition, d ports.Drawable) *Registry {
	r.stimuli[cond] = d
	return r
}

// Stimulus returns the stimulus bound to the condition.
func (r *Registry) Stimulus(cond domain.Condition) (ports.Drawable, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.stimuli[cond]
	return d, ok && d != nil
}

// Missing returns the conditions of the timeline without a bound stimulus.
func (r *Registry) Missing(tl *domain.Timeline) []domain.Condition {
	var out []domain.Condition
	seen := make(map[domain.Condition]bool)
	for _, cond := range tl.Conditions() {
		if seen[cond] {
			continue
		}
		seen[cond] = true
		if _, ok := r.Stimulus(cond); !ok {
			out = append(out, cond)
		}
	}
	return out
}

func draw(d ports.Drawable) {
	if d != nil {
		d.Draw()
	}
}
