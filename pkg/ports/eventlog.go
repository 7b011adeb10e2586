package ports

import (
	"context"

	"github.com/aretw0/cadence/pkg/domain"
)

// EventLog persists the records of experiment runs.
type EventLog interface {
	// Append adds a record to the run, preserving insertion order.
	Append(ctx context.Context, runID string, record domain.Record) error

	// List returns every record of the run in insertion order.
	// Returns domain.ErrRunNotFound if the run has no records.
	List(ctx context.Context, runID string) ([]domain.Record, error)

	// Delete removes the run.
	Delete(ctx context.Context, runID string) error

	// Runs returns the IDs of every stored run.
	Runs(ctx context.Context) ([]string, error)
}
