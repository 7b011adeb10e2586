package tui_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDisplay struct{ flips int }

func (d *countingDisplay) Flip(context.Context) error {
	d.flips++
	return nil
}

func timeline() *domain.Timeline {
	return &domain.Timeline{
		Trials: []domain.Trial{
			{Index: 0, Kind: domain.KindWait, Phases: []domain.Phase{
				domain.Unbounded(domain.PhaseDummy, "t"),
				domain.Seconds(domain.PhaseIntro, 2),
			}},
			{Index: 1, Kind: domain.KindBlock, Condition: domain.ConditionRight, ITI: 4.5, Phases: []domain.Phase{
				domain.Seconds(domain.PhaseStim, 10),
				domain.Seconds(domain.PhaseITI, 4.5),
			}},
			{Index: 2, Kind: domain.KindOutro, Phases: []domain.Phase{domain.Seconds(domain.PhaseOutro, 13.5)}},
		},
		ITIs:     []float64{4.5},
		Events:   []domain.Condition{domain.ConditionRight},
		Repeats:  1,
		Schedule: domain.Schedule{Naive: 26.5, Total: 30, Padding: 3.5, Outro: 13.5},
	}
}

func TestScreen_Frames(t *testing.T) {
	var buf bytes.Buffer
	d := &countingDisplay{}
	s := tui.NewScreen(&buf, d)

	txt := s.Text("MOVE RIGHT HAND", "")
	txt.Draw()
	require.NoError(t, s.Flip(context.Background()))
	assert.Contains(t, buf.String(), "MOVE RIGHT HAND")

	// An identical frame is not printed again.
	n := buf.Len()
	txt.Draw()
	require.NoError(t, s.Flip(context.Background()))
	assert.Equal(t, n, buf.Len())

	dot := s.Dot("")
	dot.SetPos(domain.Point{X: 1.5, Y: -2})
	dot.Draw()
	require.NoError(t, s.Flip(context.Background()))
	assert.Contains(t, buf.String(), "(  1.50,  -2.00)")
	assert.Equal(t, 3, d.flips)

	require.NoError(t, s.Close())
	assert.True(t, strings.HasSuffix(buf.String(), "\r\n"))
}

func TestPlanMarkdown(t *testing.T) {
	md := tui.PlanMarkdown("sub-01", timeline())

	assert.Contains(t, md, "# sub-01")
	assert.Contains(t, md, "**Planned duration**: 30.00s")
	assert.Contains(t, md, "**Padding**: 3.50s")
	assert.Contains(t, md, "| 1 | block | right | stim(10s), iti(4.5s) | 4.50 |")
	assert.Contains(t, md, "| 0 | wait | - |")
}

func TestRenderer(t *testing.T) {
	render, err := tui.NewRenderer(glamour.WithStandardStyle("notty"))
	require.NoError(t, err)

	out, err := render(tui.PlanMarkdown("sub-01", timeline()))
	require.NoError(t, err)
	assert.Contains(t, out, "Planned duration")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "(_| (_| | (_| |")
}
