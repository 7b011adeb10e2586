package domain

import "strings"

// Condition identifies which stimulus/behavior a trial exercises.
type Condition string

const (
	ConditionRight   Condition = "right"
	ConditionLeft    Condition = "left"
	ConditionBoth    Condition = "both"
	ConditionSaccade Condition = "saccade"
	ConditionPursuit Condition = "pursuit"
)

// Conditions lists every supported condition label.
var Conditions = []Condition{
	ConditionRight,
	ConditionLeft,
	ConditionBoth,
	ConditionSaccade,
	ConditionPursuit,
}

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	for _, known := range Conditions {
		if c == known {
			return true
		}
	}
	return false
}

// Moving reports whether trials of this condition follow a trajectory.
func (c Condition) Moving() bool {
	return c == ConditionSaccade || c == ConditionPursuit
}

// Instruction returns the text shown for motor conditions.
func (c Condition) Instruction() string {
	switch c {
	case ConditionBoth:
		return "MOVE BOTH HANDS"
	case ConditionRight, ConditionLeft:
		return "MOVE " + strings.ToUpper(string(c)) + " HAND"
	default:
		return ""
	}
}

// ParseCondition converts a label into a Condition.
func ParseCondition(label string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(label)))
	if !c.Valid() {
		return "", NewConfigurationError("condition", "unrecognized condition label %q", label)
	}
	return c, nil
}
