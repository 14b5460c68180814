package pipeline

// State is a run's position in its lifecycle. Runs move through the working
// states in a fixed order; Done and Failed are terminal.
type State string

const (
	StateIdle         State = "idle"
	StateScanning     State = "scanning"
	StateResolving    State = "resolving"
	StateExtracting   State = "extracting"
	StateClassifying  State = "classifying"
	StateSynthesizing State = "synthesizing"
	StateEmitting     State = "emitting"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

var next = map[State]State{
	StateIdle:         StateScanning,
	StateScanning:     StateResolving,
	StateResolving:    StateExtracting,
	StateExtracting:   StateClassifying,
	StateClassifying:  StateSynthesizing,
	StateSynthesizing: StateEmitting,
	StateEmitting:     StateDone,
}

// Next returns the state that follows s in a successful run. Terminal
// states have no successor and return themselves.
func (s State) Next() State {
	if n, ok := next[s]; ok {
		return n
	}
	return s
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether a run may move from s to target. The only
// legal moves are one step forward or, from any working state, to Failed.
func CanTransition(s, target State) bool {
	if s.Terminal() {
		return false
	}
	if target == StateFailed {
		return true
	}
	return next[s] == target
}
