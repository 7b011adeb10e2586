package config

import (
	"slices"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/sequence"
)

// Preset is a named selection of conditions.
type Preset struct {
	Name   string
	Task   sequence.Task
	Events []domain.Condition
	Demo   bool
}

var presets = map[string]Preset{
	"RL":        {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionRight, domain.ConditionLeft}},
	"R":         {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionRight}},
	"L":         {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionLeft}},
	"both":      {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionBoth}},
	"LB":        {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionLeft, domain.ConditionBoth}},
	"RB":        {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionRight, domain.ConditionBoth}},
	"RBL":       {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionRight, domain.ConditionLeft, domain.ConditionBoth}},
	"demo":      {Task: sequence.TaskBlock, Events: []domain.Condition{domain.ConditionRight, domain.ConditionLeft}, Demo: true},
	"star":      {Task: sequence.TaskTrajectory, Events: []domain.Condition{domain.ConditionSaccade, domain.ConditionPursuit}},
	"star-demo": {Task: sequence.TaskTrajectory, Events: []domain.Condition{domain.ConditionSaccade, domain.ConditionPursuit}, Demo: true},
}

// aliases conform alternative orderings to the canonical preset name.
var aliases = map[string]string{
	"LR":  "RL",
	"BR":  "RB",
	"BL":  "LB",
	"all": "RBL",
}

// Canonical resolves aliases. Unknown names are returned unchanged.
func Canonical(name string) string {
	name = strings.TrimSpace(name)
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// LookupPreset returns the preset for a name or one of its aliases.
func LookupPreset(name string) (Preset, error) {
	name = Canonical(name)
	p, ok := presets[name]
	if !ok {
		return Preset{}, domain.NewConfigurationError("condition",
			"must be one of %s (or aliases LR, BR, BL, all), not %q", strings.Join(PresetNames(), ", "), name)
	}
	p.Name = name
	p.Events = slices.Clone(p.Events)
	return p, nil
}

// PresetNames returns the canonical preset names in lexical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
