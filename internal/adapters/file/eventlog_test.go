package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cadence/internal/adapters/file"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLog_Contract(t *testing.T) {
	ports.RunEventLogContract(t, file.New(t.TempDir()))
}

func TestEventLog_Layout(t *testing.T) {
	dir := t.TempDir()
	log := file.New(dir)
	ctx := context.Background()

	id := "sub-01_ses-1_run-1_task-RL"
	require.NoError(t, log.Append(ctx, id, domain.Record{Type: domain.EventTrialStart, Onset: 0.25}))
	require.NoError(t, log.Append(ctx, id, domain.Record{Type: domain.EventTrialEnd, Onset: 10.25}))

	data, err := os.ReadFile(filepath.Join(dir, id, id+"_events.jsonl"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"trial_start"`)
	assert.Len(t, splitLines(data), 2)

	// A fresh instance sees the same records.
	records, err := file.New(dir).List(ctx, id)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 10.25, records[1].Onset)
}

func TestEventLog_RejectsPaths(t *testing.T) {
	log := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, log.Append(ctx, "", domain.Record{}))
	assert.Error(t, log.Append(ctx, "../escape", domain.Record{}))
	_, err := log.List(ctx, "a/b")
	assert.Error(t, err)
}

func TestEventLog_CorruptRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "run"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run", "run_events.jsonl"), []byte("{not json}\n"), 0o644))

	_, err := file.New(dir).List(context.Background(), "run")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRunNotFound)
	assert.Contains(t, err.Error(), "run:1")
}

func TestEventLog_RunsWithoutBase(t *testing.T) {
	runs, err := file.New(filepath.Join(t.TempDir(), "missing")).Runs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func splitLines(data []byte) []string {
	var out []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			out = append(out, string(data[start:i]))
			start = i + 1
		}
	}
	return out
}
