package runner_test

import (
	"github.com/aretw0/cadence/pkg/domain"
)

const frame = 0.25

type counter struct{ n int }

func (c *counter) Draw() { c.n++ }

type mover struct {
	counter
	positions []domain.Point
}

func (m *mover) SetPos(p domain.Point) { m.positions = append(m.positions, p) }

// blockTimeline: wait (trigger, intro 1s), right and left trials (stim 2s, iti 1s), outro 1s.
func blockTimeline() *domain.Timeline {
	content := func(i int, cond domain.Condition) domain.Trial {
		return domain.Trial{
			Index:     i,
			Kind:      domain.KindBlock,
			Condition: cond,
			Phases: []domain.Phase{
				domain.Seconds(domain.PhaseStim, 2),
				domain.Seconds(domain.PhaseITI, 1),
			},
			ITI: 1,
		}
	}
	return &domain.Timeline{
		Trials: []domain.Trial{
			{Index: 0, Kind: domain.KindWait, Phases: []domain.Phase{
				domain.Unbounded(domain.PhaseDummy, "t"),
				domain.Seconds(domain.PhaseIntro, 1),
			}},
			content(1, domain.ConditionRight),
			content(2, domain.ConditionLeft),
			{Index: 3, Kind: domain.KindOutro, Phases: []domain.Phase{
				domain.Seconds(domain.PhaseOutro, 1).WithKeys("space"),
			}},
		},
		ITIs:     []float64{1, 1},
		Events:   []domain.Condition{domain.ConditionRight, domain.ConditionLeft},
		Repeats:  1,
		Schedule: domain.Schedule{Naive: 8, Total: 8, Outro: 1},
	}
}

func movingTimeline(path []domain.Point) *domain.Timeline {
	return &domain.Timeline{
		Trials: []domain.Trial{
			{Index: 0, Kind: domain.KindWait, Phases: []domain.Phase{
				domain.Unbounded(domain.PhaseDummy, "t"),
				domain.Seconds(domain.PhaseIntro, 0.5),
			}},
			{Index: 1, Kind: domain.KindMoving, Condition: domain.ConditionSaccade,
				Phases:     []domain.Phase{domain.Seconds(domain.PhaseStim, 1)},
				Trajectory: path,
			},
			{Index: 2, Kind: domain.KindOutro, Phases: []domain.Phase{
				domain.Seconds(domain.PhaseOutro, 0.5),
			}},
		},
		Events:  []domain.Condition{domain.ConditionSaccade},
		Repeats: 1,
	}
}
