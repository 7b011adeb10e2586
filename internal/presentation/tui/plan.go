package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
)

// PlanMarkdown describes a timeline as a markdown document: the reconciled
// schedule followed by one table row per trial.
func PlanMarkdown(title string, tl *domain.Timeline) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	s := tl.Schedule
	fmt.Fprintf(&sb, "- **Planned duration**: %.2fs\n", s.Total)
	fmt.Fprintf(&sb, "- **Naive duration**: %.2fs\n", s.Naive)
	if s.Padding > 0 {
		fmt.Fprintf(&sb, "- **Padding**: %.2fs added to the outro (%.2fs)\n", s.Padding, s.Outro)
	}
	fmt.Fprintf(&sb, "- **Trials**: %d (%d× %s)\n\n", len(tl.Content()), tl.Repeats, joinConditions(tl.Events))

	sb.WriteString("| # | Kind | Condition | Phases | ITI |\n")
	sb.WriteString("|---|------|-----------|--------|-----|\n")
	for _, t := range tl.Trials {
		phases := make([]string, len(t.Phases))
		for i, p := range t.Phases {
			phases[i] = p.String()
		}
		cond := string(t.Condition)
		if cond == "" {
			cond = "-"
		}
		iti := "-"
		if t.ITI > 0 {
			iti = fmt.Sprintf("%.2f", t.ITI)
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n", t.Index, t.Kind, cond, strings.Join(phases, ", "), iti)
	}
	return sb.String()
}

func joinConditions(cs []domain.Condition) string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return strings.Join(out, "/")
}
