package reservation

type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCancelled  Status = "CANCELLED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
)

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo encodes the lifecycle state machine. No transition is
// reversible except through the explicit cancellation path.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusCreated:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCheckedIn
	case StatusCheckedIn:
		return next == StatusCheckedOut
	default:
		return false
	}
}

// Modifiable reports whether reservation fields may still be patched.
func (s Status) Modifiable() bool {
	return s == StatusCreated || s == StatusConfirmed
}

// Cancellable reports whether the cancellation saga may run.
func (s Status) Cancellable() bool {
	return s == StatusCreated || s == StatusConfirmed
}
