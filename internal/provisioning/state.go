package provisioning

// State names a stage of the provisioning pipeline. A request moves strictly
// forward; Rejected and Completed are terminal.
type State string

const (
	StateReceived      State = "received"
	StateRateChecked   State = "rate_checked"
	StateValidated     State = "validated"
	StateScoreComputed State = "score_computed"
	StateConfigured    State = "configured"
	StateRegistered    State = "registered"
	StateCompleted     State = "completed"
	StateRejected      State = "rejected"
)

// transitions lists the legal successor states. Every non-terminal state may
// fall into Rejected.
var transitions = map[State][]State{
	StateReceived:      {StateRateChecked, StateRejected},
	StateRateChecked:   {StateValidated, StateRejected},
	StateValidated:     {StateScoreComputed, StateRejected},
	StateScoreComputed: {StateConfigured, StateRejected},
	StateConfigured:    {StateRegistered, StateRejected},
	StateRegistered:    {StateCompleted, StateRejected},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s State) CanTransitionTo(next State) bool {
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}
