package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/config"
	"github.com/aretw0/cadence/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from the Stdout stimuli).
// Raw mode terminals need explicit carriage returns.
func createLogger(debug, raw bool) *slog.Logger {
	if debug {
		return logging.NewWithOptions(logging.Options{Level: slog.LevelDebug, RawTerminal: raw})
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// loadSettings reads the settings file, or the built-in defaults when path
// is empty. Keys no option consumed are reported as warnings.
func loadSettings(path string, logger *slog.Logger) (*config.Settings, error) {
	if path == "" {
		return config.Default(), nil
	}
	s, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if len(s.Unused) > 0 {
		logger.Warn("unused settings", "keys", s.Unused, "file", path)
	}
	return s, nil
}

// isInterrupted reports whether err ends a run on request of the operator.
func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrAborted)
}

// handleExecutionError maps operator interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}

// logCompletion tells the operator how the run ended.
func logCompletion(w io.Writer, runID string, err error, sig os.Signal) {
	switch {
	case err == nil:
		printSystemMessage(w, "Run '%s' finished.", runID)
	case !isInterrupted(err):
		printSystemMessage(w, "Run '%s' failed: %v", runID, err)
	case sig == os.Interrupt:
		fmt.Fprintf(w, "[CTRL+C]\n")
		printSystemMessage(w, "Run '%s' interrupted.", runID)
	case sig != nil:
		printSystemMessage(w, "Run '%s' terminated.", runID)
	default:
		printSystemMessage(w, "Run '%s' aborted.", runID)
	}
}
