package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/cadence"
	httpAdapter "github.com/aretw0/cadence/internal/adapters/http"
	"github.com/aretw0/cadence/internal/adapters/terminal"
	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observability"
	"github.com/aretw0/cadence/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ExperimentOptions
	Subject string
	Session string
	Run     string

	// RedisAddr overrides various.redis_addr of the settings.
	RedisAddr string
	// LogDir stores the records as files when no redis address is set.
	LogDir    string
	// ServeAddr exposes the inspection API and the live events while running.
	ServeAddr string
	Quiet     bool

	In  io.Reader
	Out io.Writer
}

// Execute runs the experiment in the terminal until it finishes, an abort key
// is pressed or the process is interrupted.
func Execute(opts RunOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger := createLogger(opts.Debug, true)

	exp, err := newExperiment(opts.ExperimentOptions, logger)
	if err != nil {
		return err
	}
	tl, err := exp.Plan()
	if err != nil {
		return err
	}
	settings := exp.Settings

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	addr := opts.RedisAddr
	if addr == "" {
		addr = settings.Various.RedisAddr
	}
	log, closeLog, err := openEventLog(sc, addr, opts.LogDir, logger)
	if err != nil {
		return err
	}

	runID := cadence.RunID(opts.Subject, opts.Session, opts.Run, exp.Preset.Name)
	unique, err := cadence.UniqueRunID(sc, log, runID, time.Now())
	if err != nil {
		_ = closeLog()
		return err
	}
	if unique != runID {
		logger.Warn("run already recorded, renaming to avoid overwriting", "run_id", runID, "renamed", unique)
		runID = unique
	}

	metrics := observability.NewMetrics()
	metrics.ObservePlan(tl)
	hooks := domain.ChainHooks(metrics.Hooks(), observability.LoggingHooks(logger))

	if opts.ServeAddr != "" {
		streams := httpAdapter.NewStreamManager(logger)
		hooks = domain.ChainHooks(hooks, streams.Hooks(runID))
		handler, err := httpAdapter.NewHandler(&httpAdapter.Server{
			Timeline:    tl,
			RefreshRate: settings.Various.RefreshRate,
			Log:         log,
			Metrics:     metrics.Handler(),
			Streams:     streams,
			Logger:      logger,
		})
		if err != nil {
			_ = closeLog()
			return err
		}
		srv := &http.Server{Addr: opts.ServeAddr, Handler: handler}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("inspection server failed", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	clock := terminal.NewWallClock()
	pacer := terminal.NewPacer(settings.Various.RefreshRate)
	screen := tui.NewScreen(opts.Out, pacer)
	keyboard, err := terminal.NewKeyboard(opts.In, clock, terminal.WithKeyboardLogger(logger))
	if err != nil {
		pacer.Stop()
		_ = closeLog()
		return err
	}

	if !opts.Quiet {
		tui.PrintBanner(opts.Out)
		printSystemMessage(opts.Out, "Run '%s': %d trials, %.1fs planned (seed %d).",
			runID, len(tl.Content()), tl.Schedule.Total, exp.Seed())
		printSystemMessage(opts.Out, "Waiting for trigger '%s'. Abort with q or escape.", settings.Various.MRITrigger)
	}
	keyboard.Start()

	err = exp.Run(sc,
		runner.WithClock(clock),
		runner.WithDisplay(screen),
		runner.WithTriggers(keyboard),
		runner.WithRegistry(buildRegistry(screen, settings, tl)),
		runner.WithEventLog(log, runID),
		runner.WithLifecycleHooks(hooks),
		runner.WithCloser(keyboard.Close),
		runner.WithCloser(screen.Close),
		runner.WithCloser(func() error {
			pacer.Stop()
			return nil
		}),
		runner.WithCloser(closeLog),
	)
	if !opts.Quiet {
		logCompletion(opts.Out, runID, err, sc.Signal())
	}
	return handleExecutionError(err)
}
