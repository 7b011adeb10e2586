package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cadence/internal/presentation/graph"
	"github.com/aretw0/cadence/pkg/domain"
)

func timeline() *domain.Timeline {
	return &domain.Timeline{
		Trials: []domain.Trial{
			{Index: 0, Kind: domain.KindWait, Phases: []domain.Phase{
				domain.Unbounded(domain.PhaseDummy, "t"),
				domain.Seconds(domain.PhaseIntro, 2),
			}},
			{Index: 1, Kind: domain.KindBlock, Condition: domain.ConditionLeft, Phases: []domain.Phase{
				domain.Seconds(domain.PhaseStim, 10),
				domain.Frames(domain.PhaseITI, 150),
			}},
			{Index: 2, Kind: domain.KindOutro, Phases: []domain.Phase{domain.Seconds(domain.PhaseOutro, 8)}},
		},
	}
}

func TestGenerateGantt(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GanttOverlay
		contains []string
	}{
		{
			name: "Sections And Chained Phases",
			contains: []string{
				"dateFormat X",
				"section 0 wait",
				"dummy :milestone, t0_0, 0, 0s",
				"intro :t0_1, 0, 2s",
				"section 1 block left",
				"stim :t1_0, 2, 10s",
				"iti :t1_1, 12, 2.5s",
				"outro :t2_0, 14.5, 8s",
			},
		},
		{
			name:    "Overlay",
			overlay: &graph.GanttOverlay{Completed: 1, Current: 1},
			contains: []string{
				"intro :done, t0_1, 0, 2s",
				"stim :active, t1_0, 2, 10s",
				"outro :t2_0, 14.5, 8s",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateGantt(timeline(), 60, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateGantt() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}
