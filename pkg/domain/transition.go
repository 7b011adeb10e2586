package domain

// TransitionCause explains why a phase ended.
type TransitionCause string

const (
	CauseStart   TransitionCause = "start"   // first phase entered
	CauseElapsed TransitionCause = "elapsed" // duration reached
	CauseTrigger TransitionCause = "trigger" // matching key observed
	CauseStopped TransitionCause = "stopped" // external cancellation
)

// Transition records a phase change inside a trial.
// From is -1 when the first phase is entered; To is -1 when the trial finished.
type Transition struct {
	From  int             `json:"from"`
	To    int             `json:"to"`
	At    float64         `json:"at"`
	Cause TransitionCause `json:"cause"`
	Key   string          `json:"key,omitempty"`
}
