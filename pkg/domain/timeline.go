package domain

// Schedule is the outcome of duration reconciliation.
type Schedule struct {
	// Naive is start + n·stim + sum(ITIs) + outro before padding.
	Naive float64 `json:"naive"`
	// Total is the planned experiment duration after padding.
	Total float64 `json:"total"`
	// Padding is the time added to the outro to reach the intended duration.
	Padding float64 `json:"padding"`
	// Outro is the adjusted outro duration (original outro + padding).
	Outro float64 `json:"outro"`
}

// Timeline is the full, immutable plan of an experiment.
type Timeline struct {
	Trials   []Trial     `json:"trials"`
	ITIs     []float64   `json:"itis"`
	Schedule Schedule    `json:"schedule"`
	Events   []Condition `json:"events"`
	Repeats  int         `json:"repeats"`
}

// Content returns the trials between the leading wait trial and the outro.
func (tl *Timeline) Content() []Trial {
	if len(tl.Trials) < 2 {
		return nil
	}
	return tl.Trials[1 : len(tl.Trials)-1]
}

// Conditions returns the condition order of the content trials.
func (tl *Timeline) Conditions() []Condition {
	content := tl.Content()
	out := make([]Condition, len(content))
	for i, t := range content {
		out[i] = t.Condition
	}
	return out
}

// Validate checks every trial of the timeline.
func (tl *Timeline) Validate() error {
	if len(tl.Trials) < 2 {
		return NewConfigurationError("timeline", "timeline must contain the wait and outro trials")
	}
	for i, t := range tl.Trials {
		if t.Index != i {
			return NewConfigurationError("timeline", "trial at position %d has index %d", i, t.Index)
		}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
