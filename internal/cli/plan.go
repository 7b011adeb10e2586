package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/cadence/internal/presentation/graph"
	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/charmbracelet/glamour"
)

// Plan output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatMermaid  = "mermaid"
)

// PlanOptions contains the configuration for the plan command.
type PlanOptions struct {
	ExperimentOptions
	Format string
	// Style is the glamour style of the markdown output; empty follows the
	// terminal background.
	Style string
	Out   io.Writer
}

// Plan builds the timeline and prints it without running anything.
func Plan(opts PlanOptions) error {
	logger := createLogger(opts.Debug, false)
	exp, err := newExperiment(opts.ExperimentOptions, logger)
	if err != nil {
		return err
	}
	tl, err := exp.Plan()
	if err != nil {
		return err
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(tl)
	case FormatMermaid:
		_, err := fmt.Fprintln(opts.Out, graph.GenerateGantt(tl, exp.Settings.Various.RefreshRate, nil))
		return err
	case FormatMarkdown, "":
		var rOpts []glamour.TermRendererOption
		if opts.Style != "" {
			rOpts = append(rOpts, glamour.WithStandardStyle(opts.Style))
		}
		render, err := tui.NewRenderer(rOpts...)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s (seed %d)", exp.Preset.Name, exp.Seed())
		out, err := render(tui.PlanMarkdown(title, tl))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(opts.Out, out)
		return err
	default:
		return fmt.Errorf("unknown format %q (markdown, json, mermaid)", opts.Format)
	}
}
