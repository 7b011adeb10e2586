// Package schedule computes the total duration of an experiment and pads it to an intended target.
package schedule

import (
	"github.com/aretw0/cadence/pkg/domain"
)

// Plan holds the durations that make up an experiment, in seconds.
type Plan struct {
	Start   float64
	NTrials int
	Stim    float64
	ITISum  float64
	Outro   float64

	// Intended is the experimenter-specified total; nil disables padding.
	Intended *float64

	// Demo bypasses reconciliation entirely.
	Demo bool
}

// Naive returns start + n·stim + sum(ITIs) + outro.
func (p Plan) Naive() float64 {
	return p.Start + float64(p.NTrials)*p.Stim + p.ITISum + p.Outro
}

// Reconcile pads the outro so the experiment lasts exactly the intended duration.
// An intended duration shorter than the naive total is infeasible and reported as
// a *domain.ConfigurationError.
func Reconcile(p Plan) (domain.Schedule, error) {
	naive := p.Naive()
	s := domain.Schedule{Naive: naive, Total: naive, Outro: p.Outro}

	if p.Demo || p.Intended == nil {
		return s, nil
	}

	intended := *p.Intended
	switch {
	case intended < naive:
		return domain.Schedule{}, domain.NewConfigurationError("intended_duration",
			"intended duration (%gs) is smaller than total experiment time (%gs)", intended, naive)
	case naive < intended:
		s.Padding = intended - naive
		s.Outro = p.Outro + s.Padding
		s.Total = intended
	}
	return s, nil
}
