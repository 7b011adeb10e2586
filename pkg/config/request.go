package config

import (
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/iti"
	"github.com/aretw0/cadence/pkg/sequence"
)

// demoDuration replaces every configured duration in demo mode.
const demoDuration = 2.0

// Request builds the timeline request for a preset.
//
// Demo presets shorten the run: block demos use 2 s phases, a 2 s static ITI
// and a single repeat; trajectory demos use 2 s start and end periods and two
// repeats. Demo runs skip duration reconciliation.
func (s *Settings) Request(preset string) (sequence.Request, error) {
	p, err := LookupPreset(preset)
	if err != nil {
		return sequence.Request{}, err
	}

	d := s.Design
	req := sequence.Request{
		Task:      p.Task,
		Events:    p.Events,
		Repeats:   d.Repeats,
		Randomize: d.Randomize,
		Start:     d.StartDuration,
		Stim:      d.StimDuration,
		Outro:     d.EndDuration,
		Intended:  d.IntendedDuration,
		Demo:      p.Demo,
		StaticITI: d.StaticISI,
		ITI: iti.Params{
			Mean:    d.MeanITI,
			Minimal: d.MinimalITI,
			Maximal: d.MaximalITI,
			Leeway:  d.Leeway,
		},
		Cue:        d.CueTime,
		TriggerKey: s.Various.MRITrigger,
		SkipKey:    s.Various.SkipKey,
	}

	if p.Task == sequence.TaskTrajectory {
		anchors, err := s.Anchors()
		if err != nil {
			return sequence.Request{}, err
		}
		req.Anchors = anchors
		req.Steps = map[domain.Condition]int{
			domain.ConditionSaccade: d.StepsSaccade,
			domain.ConditionPursuit: d.StepsPursuit,
		}
		req.Cue = nil
		req.StaticITI = nil
	}

	if p.Demo {
		req.Start = demoDuration
		req.Outro = demoDuration
		req.Intended = nil
		if p.Task == sequence.TaskBlock {
			static := demoDuration
			req.Stim = demoDuration
			req.StaticITI = &static
			req.Repeats = 1
		} else {
			req.Repeats = 2
		}
		if req.Cue != nil && *req.Cue >= demoDuration {
			req.Cue = nil
		}
	}
	return req, nil
}

// Anchors returns the trajectory waypoints.
func (s *Settings) Anchors() ([]domain.Point, error) {
	out := make([]domain.Point, len(s.Stimuli.StarAnchors))
	for i, a := range s.Stimuli.StarAnchors {
		if len(a) != 2 {
			return nil, domain.NewConfigurationError("star_anchors", "anchor %d must be an [x, y] pair, got %v", i, a)
		}
		out[i] = domain.Point{X: a[0], Y: a[1]}
	}
	return out, nil
}
