package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "cadence version ")
}

func TestPlanCommand(t *testing.T) {
	out := execute(t, "plan", "demo", "--format", "json", "--seed", "9")

	var tl domain.Timeline
	require.NoError(t, json.Unmarshal([]byte(out), &tl))
	assert.Len(t, tl.Trials, 4)
	assert.Equal(t, []domain.Condition{domain.ConditionRight, domain.ConditionLeft}, tl.Events)
}

func TestPositional(t *testing.T) {
	args := []string{"01", "", "2"}
	assert.Equal(t, "01", positional(args, 0, "x"))
	assert.Equal(t, "0", positional(args, 1, "0"))
	assert.Equal(t, "2", positional(args, 2, "0"))
	assert.Equal(t, "RL", positional(args, 3, "RL"))
}
