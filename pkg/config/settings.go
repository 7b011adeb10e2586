package config

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:embed settings.yml
var defaultSettings []byte

// Design holds the timing parameters of the experiment.
type Design struct {
	Repeats          int      `mapstructure:"n_repeats" json:"n_repeats"`
	StartDuration    float64  `mapstructure:"start_duration" json:"start_duration"`
	StimDuration     float64  `mapstructure:"stim_duration" json:"stim_duration"`
	EndDuration      float64  `mapstructure:"end_duration" json:"end_duration"`
	IntendedDuration *float64 `mapstructure:"intended_duration" json:"intended_duration,omitempty"`
	StaticISI        *float64 `mapstructure:"static_isi" json:"static_isi,omitempty"`

	MeanITI    float64 `mapstructure:"mean_iti_duration" json:"mean_iti_duration"`
	MinimalITI float64 `mapstructure:"minimal_iti_duration" json:"minimal_iti_duration"`
	MaximalITI float64 `mapstructure:"maximal_iti_duration" json:"maximal_iti_duration"`
	Leeway     float64 `mapstructure:"total_iti_duration_leeway" json:"total_iti_duration_leeway"`

	CueTime   *float64 `mapstructure:"cue_time" json:"cue_time,omitempty"`
	Randomize bool     `mapstructure:"randomize" json:"randomize"`

	StepsSaccade int `mapstructure:"steps_saccade" json:"steps_saccade"`
	StepsPursuit int `mapstructure:"steps_pursuit" json:"steps_pursuit"`

	// Seed makes the timeline reproducible; nil draws a random seed.
	Seed *uint64 `mapstructure:"seed" json:"seed,omitempty"`
}

// Stimuli holds the appearance of the stimuli.
type Stimuli struct {
	TextColor     string      `mapstructure:"text_color" json:"text_color"`
	FixationColor string      `mapstructure:"fixation_color" json:"fixation_color"`
	FixationWidth float64     `mapstructure:"fixation_width" json:"fixation_width"`
	CueColor      string      `mapstructure:"cue_color" json:"cue_color"`
	CueSize       float64     `mapstructure:"cue_size" json:"cue_size"`
	StarAnchors   [][]float64 `mapstructure:"star_anchors" json:"star_anchors,omitempty"`
}

// Various holds everything else: text layout, keys and the display.
type Various struct {
	TextHeight  float64 `mapstructure:"text_height" json:"text_height"`
	TextWidth   float64 `mapstructure:"text_width" json:"text_width"`
	MRITrigger  string  `mapstructure:"mri_trigger" json:"mri_trigger"`
	SkipKey     string  `mapstructure:"skip_key" json:"skip_key"`
	RefreshRate float64 `mapstructure:"refresh_rate" json:"refresh_rate"`
	RedisAddr   string  `mapstructure:"redis_addr" json:"redis_addr,omitempty"`
}

// Settings is the immutable configuration of an experiment.
type Settings struct {
	Design  Design  `json:"design"`
	Stimuli Stimuli `json:"stimuli"`
	Various Various `json:"various"`

	// Unused lists the keys of the file that no field consumed, as section.key.
	Unused []string `json:"-"`
}

var required = map[string][]string{
	"design": {"n_repeats", "start_duration", "stim_duration", "end_duration"},
}

// Default returns the built-in settings.
func Default() *Settings {
	s, err := Parse(defaultSettings)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded settings: %v", err))
	}
	return s
}

// Load reads a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML settings document.
func Parse(data []byte) (*Settings, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	s := &Settings{}
	sections := []struct {
		name   string
		target any
	}{
		{"design", &s.Design},
		{"stimuli", &s.Stimuli},
		{"various", &s.Various},
	}
	for _, sec := range sections {
		v, ok := raw[sec.name]
		if !ok {
			if len(required[sec.name]) > 0 {
				return nil, domain.NewConfigurationError(sec.name, "missing section")
			}
			continue
		}
		delete(raw, sec.name)

		unused, err := decodeSection(sec.name, v, sec.target)
		if err != nil {
			return nil, err
		}
		s.Unused = append(s.Unused, unused...)
	}
	for k := range raw {
		s.Unused = append(s.Unused, k)
	}
	slices.Sort(s.Unused)

	s.applyDefaults()
	return s, nil
}

func decodeSection(name string, input any, target any) ([]string, error) {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("%w: section %s: %v", domain.ErrConfiguration, name, err)
	}

	present := make(map[string]bool, len(md.Keys))
	for _, k := range md.Keys {
		present[k] = true
	}
	for _, k := range required[name] {
		if !present[k] {
			return nil, domain.NewConfigurationError(name+"."+k, "required option is missing")
		}
	}

	unused := make([]string, len(md.Unused))
	for i, k := range md.Unused {
		unused[i] = name + "." + k
	}
	return unused, nil
}

func (s *Settings) applyDefaults() {
	if s.Various.MRITrigger == "" {
		s.Various.MRITrigger = domain.DefaultTriggerKey
	}
	if s.Various.SkipKey == "" {
		s.Various.SkipKey = domain.DefaultSkipKey
	}
	if s.Various.RefreshRate <= 0 {
		s.Various.RefreshRate = 60
	}
}
