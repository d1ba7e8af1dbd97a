package workflow

// Trigger is an operation that moves a deal between states
type Trigger string

const (
	TriggerEdit    Trigger = "EDIT"
	TriggerSubmit  Trigger = "SUBMIT"
	TriggerApprove Trigger = "APPROVE"
	TriggerReject  Trigger = "REJECT"
)

func (t Trigger) String() string {
	return string(t)
}
