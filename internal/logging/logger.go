// Package logging builds the application loggers.
package logging

import (
	"bytes"
	"io"
	"log/slog"
	"os"
)

// Options configure an application logger.
type Options struct {
	Level slog.Level
	// JSON selects the JSON handler instead of the text handler.
	JSON bool
	// RawTerminal ends lines with \r\n, for terminals in raw mode.
	RawTerminal bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// New creates a configured application logger.
// It writes to Stderr (to separate from the Stdout stimuli).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions creates a logger from explicit options.
func NewWithOptions(o Options) *slog.Logger {
	w := o.Writer
	if w == nil {
		w = os.Stderr
	}
	if o.RawTerminal {
		w = crlfWriter{w}
	}
	ho := &slog.HandlerOptions{
		Level: o.Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	if o.JSON {
		return slog.New(slog.NewJSONHandler(w, ho))
	}
	return slog.New(slog.NewTextHandler(w, ho))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type crlfWriter struct{ w io.Writer }

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
