package main

import (
	"github.com/aretw0/cadence/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <subject> [session] [run] [condition]",
	Short: "Run the experiment in the terminal",
	Long: `Runs the experiment for a subject. Session and run default to 0 and the
condition to RL. The run is recorded as
sub-<subject>_ses-<session>_run-<run>_task-<condition>; an existing recording
is never appended to.`,
	Args: cobra.RangeArgs(1, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		redisAddr, _ := cmd.Flags().GetString("redis")
		logDir, _ := cmd.Flags().GetString("logs")
		serveAddr, _ := cmd.Flags().GetString("serve")
		quiet, _ := cmd.Flags().GetBool("quiet")

		return cli.Execute(cli.RunOptions{
			ExperimentOptions: experimentOptions(cmd, positional(args, 3, "RL")),
			Subject:           args[0],
			Session:           positional(args, 1, "0"),
			Run:               positional(args, 2, "0"),
			RedisAddr:         redisAddr,
			LogDir:            logDir,
			ServeAddr:         serveAddr,
			Quiet:             quiet,
			In:                cmd.InOrStdin(),
			Out:               cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("redis", "", "Redis address of the event log (default: various.redis_addr)")
	runCmd.Flags().String("logs", "logs", "Directory of the recorded runs when redis is not used")
	runCmd.Flags().String("serve", "", "Expose the inspection API and live events on this address while running")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner and status messages")
}
