package domain

// ExecutionStatus defines the current mode of a trial's phase machine.
type ExecutionStatus string

const (
	StatusPending    ExecutionStatus = "pending"    // not ticked yet
	StatusActive     ExecutionStatus = "active"     // inside a time-driven phase
	StatusWaiting    ExecutionStatus = "waiting"    // inside an unbounded phase, waiting for a trigger
	StatusTerminated ExecutionStatus = "terminated" // past the last phase
)

// State represents the current snapshot of a trial's execution.
type State struct {
	TrialIndex int             `json:"trial_index"`
	PhaseIndex int             `json:"phase_index"`
	Phase      PhaseName       `json:"phase,omitempty"`
	Status     ExecutionStatus `json:"status"`

	// PhaseStart is the clock time the active phase started at.
	PhaseStart float64 `json:"phase_start"`

	// Cursor is the trajectory index of moving trials.
	Cursor int `json:"cursor"`
}

// TriggerEvent is a key observed since the previous tick.
type TriggerEvent struct {
	Key       string  `json:"key"`
	Timestamp float64 `json:"timestamp"`
}

// Tick is the outcome of advancing a trial by one display refresh.
type Tick struct {
	State State `json:"state"`

	// Phase is the active phase after the tick (zero when Done).
	Phase Phase `json:"phase"`

	// Elapsed is the time spent in the active phase.
	Elapsed float64 `json:"elapsed"`

	// Transitions lists the phase changes that happened during the tick, in order.
	Transitions []Transition `json:"transitions,omitempty"`

	// Position is the current stimulus position of moving trials.
	Position Point `json:"position"`
	Moving   bool  `json:"moving,omitempty"`

	Done bool `json:"done"`
}
