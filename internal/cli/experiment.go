package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/internal/adapters/file"
	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/aretw0/cadence/pkg/adapters/memory"
	"github.com/aretw0/cadence/pkg/adapters/redis"
	"github.com/aretw0/cadence/pkg/config"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/aretw0/cadence/pkg/runner"
)

// ExperimentOptions selects the settings and condition of an experiment.
type ExperimentOptions struct {
	ConfigPath string
	Condition  string
	Seed       *uint64
	Debug      bool
}

func newExperiment(opts ExperimentOptions, logger *slog.Logger) (*cadence.Experiment, error) {
	settings, err := loadSettings(opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}
	expOpts := []cadence.Option{cadence.WithLogger(logger)}
	if opts.Seed != nil {
		expOpts = append(expOpts, cadence.WithSeed(*opts.Seed))
	}
	return cadence.New(settings, opts.Condition, expOpts...)
}

// openEventLog connects to redis when an address is given, writes under
// logDir when a directory is given and keeps the records in memory otherwise.
func openEventLog(ctx context.Context, addr, logDir string, logger *slog.Logger) (ports.EventLog, func() error, error) {
	nop := func() error { return nil }
	switch {
	case addr == "" && logDir != "":
		logger.Info("event log", "backend", "file", "dir", logDir)
		return file.New(logDir), nop, nil
	case addr == "":
		return memory.NewEventLog(), nop, nil
	}
	log := redis.New(addr, "", 0)
	if _, err := log.Runs(ctx); err != nil {
		_ = log.Close()
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	logger.Info("event log", "backend", "redis", "addr", addr)
	return log, log.Close, nil
}

// buildRegistry binds terminal stimuli to the conditions of the timeline.
func buildRegistry(screen *tui.Screen, s *config.Settings, tl *domain.Timeline) *runner.Registry {
	st := s.Stimuli
	reg := runner.NewRegistry()
	reg.Instructions = screen.Text(fmt.Sprintf("Waiting for the scanner (%s)", s.Various.MRITrigger), st.TextColor)
	reg.Fixation = screen.Text("+", st.FixationColor)
	reg.Cue = screen.Text("+", st.CueColor)

	for _, c := range tl.Events {
		if c.Moving() {
			reg.Register(c, screen.Dot(st.TextColor))
			continue
		}
		reg.Register(c, screen.Text(c.Instruction(), st.TextColor))
	}
	return reg
}
