package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	httpAdapter "github.com/aretw0/cadence/internal/adapters/http"
	mcpAdapter "github.com/aretw0/cadence/pkg/adapters/mcp"
	"github.com/aretw0/cadence/pkg/observability"
)

// MCP transports of the serve command.
const (
	MCPStdio = "stdio"
	MCPSSE   = "sse"
)

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	ExperimentOptions
	Port      string
	RedisAddr string
	// LogDir stores the records as files when no redis address is set.
	LogDir    string
	// MCP enables the MCP server: "stdio" serves it alone on In and Out,
	// "sse" mounts it at /mcp of the HTTP server.
	MCP       string

	In  io.Reader
	Out io.Writer
}

// Serve plans the timeline and serves it, the recorded runs and the metrics
// over HTTP until ctx is cancelled. With MCPStdio only the MCP server runs.
func Serve(ctx context.Context, opts ServeOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	switch opts.MCP {
	case "", MCPStdio, MCPSSE:
	default:
		return fmt.Errorf("unknown mcp transport %q (supported: %s, %s)", opts.MCP, MCPStdio, MCPSSE)
	}
	logger := createLogger(opts.Debug, false)

	exp, err := newExperiment(opts.ExperimentOptions, logger)
	if err != nil {
		return err
	}
	tl, err := exp.Plan()
	if err != nil {
		return err
	}

	addr := opts.RedisAddr
	if addr == "" {
		addr = exp.Settings.Various.RedisAddr
	}
	log, closeLog, err := openEventLog(ctx, addr, opts.LogDir, logger)
	if err != nil {
		return err
	}
	defer closeLog()

	metrics := observability.NewMetrics()
	metrics.ObservePlan(tl)

	newMCP := func() *mcpAdapter.Server {
		return mcpAdapter.NewServer(exp.Settings,
			mcpAdapter.WithTimeline(tl),
			mcpAdapter.WithEventLog(log),
			mcpAdapter.WithLogger(logger),
		)
	}
	if opts.MCP == MCPStdio {
		// Stdout carries JSON-RPC only.
		logger.Info("serving MCP over stdio", "preset", exp.Preset.Name, "seed", exp.Seed())
		return newMCP().ServeStdio(ctx, opts.In, opts.Out)
	}

	api := &httpAdapter.Server{
		Timeline:    tl,
		RefreshRate: exp.Settings.Various.RefreshRate,
		Log:         log,
		Metrics:     metrics.Handler(),
		Logger:      logger,
	}
	if opts.MCP == MCPSSE {
		api.MCP = newMCP().SSEHandler("http://localhost:" + opts.Port)
	}
	handler, err := httpAdapter.NewHandler(api)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: ":" + opts.Port, Handler: handler}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	printSystemMessage(opts.Out, "Serving '%s' (seed %d) on %s", exp.Preset.Name, exp.Seed(), srv.Addr)
	if api.MCP != nil {
		printSystemMessage(opts.Out, "MCP (SSE) at http://localhost:%s/mcp/sse", opts.Port)
	}
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(opts.Out, "Server stopped gracefully")
		return nil
	}
}
