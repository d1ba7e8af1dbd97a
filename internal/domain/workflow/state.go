package workflow

import "fmt"

// State is a deal status in the financing lifecycle
type State string

const (
	StateDraft     State = "DRAFT"
	StateSubmitted State = "SUBMITTED"
	StateApproved  State = "APPROVED"
	StateRejected  State = "REJECTED"
)

var validStates = map[State]bool{
	StateDraft:     true,
	StateSubmitted: true,
	StateApproved:  true,
	StateRejected:  true,
}

// ParseState converts a platform deal status into a lifecycle state
func ParseState(status string) (State, error) {
	s := State(status)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, status)
	}
	return s, nil
}

func (s State) String() string {
	return string(s)
}

// IsValid reports whether s is a known deal status
func (s State) IsValid() bool {
	return validStates[s]
}
