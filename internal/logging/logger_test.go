package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOptions_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: slog.LevelInfo, Writer: &buf})

	logger.Debug("hidden")
	logger.Error("persist failed", "error", errors.New("disk full"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `err="disk full"`)
}

func TestNewWithOptions_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{Level: slog.LevelDebug, JSON: true, Writer: &buf})
	logger.Debug("trial_start", "trial", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "trial_start", entry["msg"])
	assert.Equal(t, 3.0, entry["trial"])
}

func TestNewWithOptions_RawTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithOptions(logging.Options{RawTerminal: true, Writer: &buf})
	logger.Info("one")
	logger.Info("two")

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\r\n")))
}

func TestNewNop(t *testing.T) {
	assert.False(t, logging.NewNop().Enabled(context.Background(), slog.LevelError))
}
