package domain

// SessionState is the screen the customer session is on.
type SessionState string

const (
	StateBrowsing     SessionState = "BROWSING"
	StateCheckoutForm SessionState = "CHECKOUT_FORM"
	StateSubmitting   SessionState = "SUBMITTING"
	StateConfirmed    SessionState = "CONFIRMED"
)

// validTransitions lists, for each state, the states it may move to.
var validTransitions = map[SessionState][]SessionState{
	StateBrowsing:     {StateCheckoutForm},
	StateCheckoutForm: {StateBrowsing, StateSubmitting},
	StateSubmitting:   {StateCheckoutForm, StateConfirmed},
	StateConfirmed:    {StateBrowsing},
}

// CanTransitionTo reports whether moving from one state to another is allowed.
func CanTransitionTo(from, to SessionState) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
