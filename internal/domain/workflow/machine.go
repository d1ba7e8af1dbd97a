package workflow

// StateMachine answers which operations a deal in its current state allows
type StateMachine interface {
	CanFire(trigger Trigger) bool

	// PermittedTriggers lists triggers configured for the current state, sorted
	PermittedTriggers() []Trigger
}

// DealLifecycle returns the deal state machine positioned at status.
// Terms may be edited only while the deal is a draft; approval outcomes
// are decided by the platform once the deal is submitted.
func DealLifecycle(status string) (StateMachine, error) {
	initial, err := ParseState(status)
	if err != nil {
		return nil, err
	}
	return dealLifecycle.Build(initial), nil
}

var dealLifecycle = newDealLifecycle()

func newDealLifecycle() StateMachineBuilder {
	b := NewBuilder()
	b.Configure(StateDraft).
		Permit(TriggerEdit, StateDraft).
		Permit(TriggerSubmit, StateSubmitted)
	b.Configure(StateSubmitted).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerReject, StateRejected)
	return b
}
