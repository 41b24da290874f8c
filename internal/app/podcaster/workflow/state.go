package workflow

// State of upload workflow
type State string

const (
	// Idle means no file is staged
	Idle State = "Idle"
	// Staged means a valid file waits for submission
	Staged State = "Staged"
	// Submitting means the generation request is in flight
	Submitting State = "Submitting"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// CanSubmit reports whether submit would start a request
func (s State) CanSubmit() bool {
	return s == Staged
}
