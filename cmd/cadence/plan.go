package main

import (
	"github.com/aretw0/cadence/internal/cli"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [condition]",
	Short: "Print the planned timeline without running it",
	Long: `Builds the timeline for a condition preset and prints the schedule and
every trial. Formats: markdown (rendered), json, mermaid (gantt chart).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return cli.Plan(cli.PlanOptions{
			ExperimentOptions: experimentOptions(cmd, positional(args, 0, "RL")),
			Format:            format,
			Out:               cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format (markdown, json, mermaid)")
}
