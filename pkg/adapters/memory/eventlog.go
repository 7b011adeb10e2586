// Package memory provides in-memory adapters, mostly useful for tests and dry runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/cadence/pkg/domain"
)

// EventLog implements ports.EventLog in memory.
// Safe for concurrent use.
type EventLog struct {
	runs map[string][]domain.Record
	mu   sync.RWMutex
}

// NewEventLog creates a new in-memory event log.
func NewEventLog() *EventLog {
	return &EventLog{
		runs: make(map[string][]domain.Record),
	}
}

// Append adds a record to the run.
func (l *EventLog) Append(ctx context.Context, runID string, record domain.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runs[runID] = append(l.runs[runID], record)
	return nil
}

// List returns a copy of the run records so callers can't mutate the log.
func (l *EventLog) List(ctx context.Context, runID string) ([]domain.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records, ok := l.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return slices.Clone(records), nil
}

// Delete removes the run.
func (l *EventLog) Delete(ctx context.Context, runID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.runs, runID)
	return nil
}

// Runs returns the stored run IDs in lexical order.
func (l *EventLog) Runs(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.runs))
	for id := range l.runs {
		ids = append(ids, id)
	}
	slices.Sort(ids) // Deterministic order
	return ids, nil
}
