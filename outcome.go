package bootcheck

// Reason names the check a boot sequence was aborted at.
type Reason string

const (
	ReasonVoltage     Reason = "voltage"
	ReasonPSUOverheat Reason = "psu-overheat"
	ReasonGPUOverheat Reason = "gpu-overheat"
	ReasonDisplayLink Reason = "display-link"
)

// State is the progress of a single boot sequence run. States only move forward:
// StateNotStarted > StateRunning > StateCompleted or StateAborted.
type State uint8

const (
	StateNotStarted State = iota
	StateRunning
	StateCompleted
	StateAborted
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome is the result of one call to BootSequencer.RunBootSequence.
type Outcome struct {
	State  State
	Reason Reason   // Set if, and only if, State is StateAborted.
	Steps  []string // Steps that ran, in order, including the one that failed.
	RunID  string
}

// Completed reports whether every check passed.
func (o Outcome) Completed() bool {
	return o.State == StateCompleted
}

// Aborted reports whether a check failed.
func (o Outcome) Aborted() bool {
	return o.State == StateAborted
}

// Err returns the CheckFailure that aborted the run, or nil.
func (o Outcome) Err() error {
	if o.State != StateAborted {
		return nil
	}
	return CheckFailure(o.Reason)
}

// String returns "completed", "aborted at <reason>", or the state name for unfinished runs.
func (o Outcome) String() string {
	if o.State == StateAborted {
		return "aborted at " + string(o.Reason)
	}
	return o.State.String()
}
