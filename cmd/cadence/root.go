package main

import (
	"fmt"
	"os"

	"github.com/aretw0/cadence/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Cadence plans and runs timed behavioral experiments",
	Long: `Cadence builds the trial timeline of a block-design or moving-stimulus
experiment from a settings file and presents it in the terminal, waiting for
the scanner trigger and logging every trial and phase onset.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Settings file (default: built-in settings)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed of the timeline (default: random)")
}

// experimentOptions reads the persistent flags.
func experimentOptions(cmd *cobra.Command, condition string) cli.ExperimentOptions {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	opts := cli.ExperimentOptions{
		ConfigPath: configPath,
		Condition:  condition,
		Debug:      debug,
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts.Seed = &seed
	}
	return opts
}

// positional returns args[i], or def when it was not given.
func positional(args []string, i int, def string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return def
}
