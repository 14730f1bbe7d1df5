package session

// State is a step of the protected request flow.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateRetrying
	StateSucceeded
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:       "idle",
	StateRequesting: "requesting",
	StateRetrying:   "retrying",
	StateSucceeded:  "succeeded",
	StateFailed:     "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the flow has finished for the current attempt.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// StateObserver is told about every transition, in order.
type StateObserver func(State)
