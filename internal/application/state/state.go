package state

// LoopState represents the lifecycle state of a game loop
type LoopState int

const (
	NotStarted LoopState = iota
	Running
	Stopped
	Errored
)

// String returns the string representation of the loop state
func (s LoopState) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// Finished reports whether the state is terminal.
// A finished loop cannot be started again.
func (s LoopState) Finished() bool {
	return s == Stopped || s == Errored
}
