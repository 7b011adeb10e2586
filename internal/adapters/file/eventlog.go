// Package file keeps run records as JSON lines on the local filesystem, one
// directory per run.
package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/aretw0/cadence/pkg/domain"
)

const eventsSuffix = "_events.jsonl"

// EventLog implements ports.EventLog using the local filesystem.
// Records of a run are appended to <BasePath>/<runID>/<runID>_events.jsonl.
type EventLog struct {
	BasePath string

	mu sync.Mutex
}

// New creates a new EventLog with the given base path.
// If basePath is empty, it defaults to "logs".
func New(basePath string) *EventLog {
	if basePath == "" {
		basePath = "logs"
	}
	return &EventLog{BasePath: basePath}
}

func (l *EventLog) path(runID string) string {
	return filepath.Join(l.BasePath, runID, runID+eventsSuffix)
}

func validRunID(runID string) error {
	if runID == "" {
		return fmt.Errorf("runID cannot be empty")
	}
	if runID != filepath.Base(runID) || runID == "." || runID == ".." {
		return fmt.Errorf("invalid runID %q", runID)
	}
	return nil
}

// Append writes the record as one JSON line. Each record is written with a
// single write call so a crash never leaves a partial earlier record.
func (l *EventLog) Append(ctx context.Context, runID string, record domain.Record) error {
	if err := validRunID(runID); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Join(l.BasePath, runID), 0755); err != nil {
		return fmt.Errorf("failed to ensure run directory: %w", err)
	}
	f, err := os.OpenFile(l.path(runID), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open events file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	return f.Close()
}

// List reads the records of a run in the order they were appended.
func (l *EventLog) List(ctx context.Context, runID string) ([]domain.Record, error) {
	if err := validRunID(runID); err != nil {
		return nil, err
	}

	l.mu.Lock()
	data, err := os.ReadFile(l.path(runID))
	l.mu.Unlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}

	var records []domain.Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %s:%d: %w", runID, line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan events file: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrRunNotFound
	}
	return records, nil
}

// Delete removes the run directory.
func (l *EventLog) Delete(ctx context.Context, runID string) error {
	if err := validRunID(runID); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(l.BasePath, runID)); err != nil {
		return fmt.Errorf("failed to delete run directory: %w", err)
	}
	return nil
}

// Runs returns the IDs of the recorded runs in lexical order.
func (l *EventLog) Runs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(l.path(entry.Name())); err == nil {
			runs = append(runs, entry.Name())
		}
	}
	slices.Sort(runs)
	return runs, nil
}
