package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cadence/pkg/config"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
design:
  n_repeats: 4
  start_duration: 5
  stim_duration: 10
  end_duration: 8
  intended_duration: 200
  mean_iti_duration: 6
  minimal_iti_duration: 3
  maximal_iti_duration: 12
  total_iti_duration_leeway: 1.5
  cue_time: 1
  randomize: true
  seed: 42
  use_movies: false
stimuli:
  star_anchors: [[0, 0], [10, 5]]
various:
  mri_trigger: "5"
extra: true
`

func TestParse(t *testing.T) {
	s, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 4, s.Design.Repeats)
	assert.Equal(t, 10.0, s.Design.StimDuration)
	require.NotNil(t, s.Design.IntendedDuration)
	assert.Equal(t, 200.0, *s.Design.IntendedDuration)
	assert.Nil(t, s.Design.StaticISI)
	require.NotNil(t, s.Design.Seed)
	assert.Equal(t, uint64(42), *s.Design.Seed)
	assert.True(t, s.Design.Randomize)

	assert.Equal(t, "5", s.Various.MRITrigger)
	assert.Equal(t, domain.DefaultSkipKey, s.Various.SkipKey, "defaults fill missing keys")
	assert.Equal(t, 60.0, s.Various.RefreshRate)

	assert.Equal(t, []string{"design.use_movies", "extra"}, s.Unused)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"Invalid YAML":       "design: [",
		"Missing design":     "various: {}",
		"Missing required":   "design: {n_repeats: 1, start_duration: 1, stim_duration: 1}",
		"Wrong section type": "design: 5",
		"Wrong field type":   "design: {n_repeats: many, start_duration: 1, stim_duration: 1, end_duration: 1}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := config.Parse([]byte("design: {n_repeats: 1, start_duration: 1, stim_duration: 1}"))
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "design.end_duration", cfgErr.Field)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Design.Repeats)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	s := config.Default()
	assert.Equal(t, domain.DefaultTriggerKey, s.Various.MRITrigger)
	assert.Len(t, s.Stimuli.StarAnchors, 5)
	assert.Empty(t, s.Unused)

	for _, name := range config.PresetNames() {
		req, err := s.Request(name)
		require.NoError(t, err, name)
		assert.NoError(t, req.Validate(), name)
	}
}

func TestLookupPreset(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		events []domain.Condition
	}{
		{"RL", "RL", []domain.Condition{domain.ConditionRight, domain.ConditionLeft}},
		{"LR", "RL", []domain.Condition{domain.ConditionRight, domain.ConditionLeft}},
		{"BR", "RB", []domain.Condition{domain.ConditionRight, domain.ConditionBoth}},
		{"BL", "LB", []domain.Condition{domain.ConditionLeft, domain.ConditionBoth}},
		{"all", "RBL", []domain.Condition{domain.ConditionRight, domain.ConditionLeft, domain.ConditionBoth}},
		{"both", "both", []domain.Condition{domain.ConditionBoth}},
		{"star", "star", []domain.Condition{domain.ConditionSaccade, domain.ConditionPursuit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := config.LookupPreset(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
			assert.Equal(t, tt.events, p.Events)
		})
	}

	_, err := config.LookupPreset("RLX")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRequest(t *testing.T) {
	s, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	t.Run("Block", func(t *testing.T) {
		req, err := s.Request("LR")
		require.NoError(t, err)
		assert.Equal(t, sequence.TaskBlock, req.Task)
		assert.Equal(t, 8, req.NTrials())
		assert.Equal(t, 6.0, req.ITI.Mean)
		assert.Equal(t, 1.5, req.ITI.Leeway)
		assert.Equal(t, "5", req.TriggerKey)
		require.NotNil(t, req.Cue)
		assert.Equal(t, 1.0, *req.Cue)
		assert.False(t, req.Demo)
	})

	t.Run("Demo", func(t *testing.T) {
		req, err := s.Request("demo")
		require.NoError(t, err)
		assert.True(t, req.Demo)
		assert.Equal(t, 1, req.Repeats)
		assert.Equal(t, 2.0, req.Start)
		assert.Equal(t, 2.0, req.Stim)
		assert.Equal(t, 2.0, req.Outro)
		require.NotNil(t, req.StaticITI)
		assert.Equal(t, 2.0, *req.StaticITI)
		assert.Nil(t, req.Intended)
		assert.NoError(t, req.Validate())
	})

	t.Run("Trajectory", func(t *testing.T) {
		req, err := s.Request("star")
		require.NoError(t, err)
		assert.Equal(t, sequence.TaskTrajectory, req.Task)
		assert.Equal(t, []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 5}}, req.Anchors)
		assert.Nil(t, req.Cue)
		assert.Equal(t, 8, req.NTrials())
	})

	t.Run("Trajectory Demo", func(t *testing.T) {
		req, err := s.Request("star-demo")
		require.NoError(t, err)
		assert.Equal(t, 2, req.Repeats)
		assert.Equal(t, 10.0, req.Stim, "trajectory demos keep the stimulus duration")
	})

	t.Run("Malformed Anchor", func(t *testing.T) {
		bad := *s
		bad.Stimuli.StarAnchors = [][]float64{{0, 0}, {1}}
		_, err := bad.Request("star")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}
