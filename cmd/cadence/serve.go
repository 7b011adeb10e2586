package main

import (
	"github.com/aretw0/cadence/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [condition]",
	Short: "Start the HTTP inspection server",
	Long: `Plans the timeline and serves it together with the recorded runs, a
gantt chart and the Prometheus metrics over HTTP.

With --mcp the timeline is also exposed as an MCP server:
- stdio: JSON-RPC on Standard Input/Output, without the HTTP server.
- sse: mounted at /mcp/sse of the HTTP server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		logDir, _ := cmd.Flags().GetString("logs")
		transport, _ := cmd.Flags().GetString("mcp")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return cli.Serve(sc, cli.ServeOptions{
			ExperimentOptions: experimentOptions(cmd, positional(args, 0, "RL")),
			Port:              port,
			RedisAddr:         redisAddr,
			LogDir:            logDir,
			MCP:               transport,
			In:                cmd.InOrStdin(),
			Out:               cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address of the event log (default: various.redis_addr)")
	serveCmd.Flags().String("logs", "logs", "Directory of the recorded runs when redis is not used")
	serveCmd.Flags().String("mcp", "", "Also serve MCP: 'stdio' or 'sse'")
}
