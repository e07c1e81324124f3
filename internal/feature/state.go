package feature

import "fmt"

// State is the resolution outcome of a single feature node.
type State int

const (
	// StateUnresolved means no resolution pass has produced a state for the
	// node yet. It is the initial state of every node and the answer given
	// for IDs that were never registered.
	StateUnresolved State = iota
	// StateEnabled means all of the node's own conditions held and every
	// dependency resolved to Enabled.
	StateEnabled
	// StateDisabled means one of the node's own conditions evaluated false.
	StateDisabled
	// StateBlocked means the node's own conditions held, but a dependency
	// did not resolve to Enabled.
	StateBlocked
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateEnabled:
		return "enabled"
	case StateDisabled:
		return "disabled"
	case StateBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status pairs a resolved state with a human-readable reason. Reason is empty
// for Enabled and Unresolved; for Disabled it names the failed condition and
// for Blocked the unavailable dependency.
type Status struct {
	State  State
	Reason string
}
