package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
)

// GanttOverlay marks run progress on the chart.
type GanttOverlay struct {
	// Completed is the number of trials already finished.
	Completed int
	// Current is the index of the running trial, or -1.
	Current int
}

// GenerateGantt produces a Mermaid gantt chart of the nominal timeline, one
// section per trial and one task per phase. Phases start where the previous
// one ends; the trigger wait is drawn as a milestone at 0 since its length is
// unknown before the run. Frame phases are converted with refreshRate.
//
// With an overlay, finished trials are tagged done and the running one active.
func GenerateGantt(tl *domain.Timeline, refreshRate float64, overlay *GanttOverlay) string {
	var sb strings.Builder
	sb.WriteString("gantt\n")
	sb.WriteString("    dateFormat X\n")
	sb.WriteString("    axisFormat %M:%S\n")

	var at float64
	for _, t := range tl.Trials {
		title := fmt.Sprintf("%d %s", t.Index, t.Kind)
		if t.Condition != "" {
			title += " " + string(t.Condition)
		}
		fmt.Fprintf(&sb, "    section %s\n", title)

		tag := ""
		if overlay != nil {
			switch {
			case t.Index < overlay.Completed:
				tag = "done, "
			case t.Index == overlay.Current:
				tag = "active, "
			}
		}

		for i, p := range t.Phases {
			id := fmt.Sprintf("t%d_%d", t.Index, i)
			if p.Unbounded {
				fmt.Fprintf(&sb, "    %s :milestone, %s%s, %s, 0s\n", p.Name, tag, id, formatSeconds(at))
				continue
			}
			d := p.Seconds(refreshRate)
			fmt.Fprintf(&sb, "    %s :%s%s, %s, %ss\n", p.Name, tag, id, formatSeconds(at), formatSeconds(d))
			at += d
		}
	}
	return sb.String()
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
