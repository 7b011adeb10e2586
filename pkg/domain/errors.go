package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel wrapped by every ConfigurationError.
var ErrConfiguration = errors.New("configuration error")

// ErrToleranceExhausted is reported when ITI sampling could not meet the leeway band
// within the retry budget. It is recoverable: the closest batch is used instead.
var ErrToleranceExhausted = errors.New("iti tolerance exhausted")

// ErrDegenerateLine is returned when a line is requested through two anchors
// sharing the same x-coordinate.
var ErrDegenerateLine = errors.New("degenerate line")

// ErrAborted is returned when the experiment was stopped by an abort key.
var ErrAborted = errors.New("experiment aborted")

// ErrRunNotFound is returned when a run ID cannot be found in the event log.
var ErrRunNotFound = errors.New("run not found")

// ConfigurationError describes an invalid or infeasible experiment plan.
// It is always fatal and raised before any trial is presented.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError builds a ConfigurationError for the given option.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// GeometryError reports a trajectory segment that cannot be expressed as y = f(x).
type GeometryError struct {
	From Point
	To   Point
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("vertical segment from %s to %s has no slope", e.From, e.To)
}

func (e *GeometryError) Unwrap() error {
	return ErrDegenerateLine
}
