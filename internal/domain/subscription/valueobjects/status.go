package valueobjects

// Status is the subscription lifecycle state. A subscription is created
// ACTIVE and moves exactly once into one of the terminal states.
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusActive:
		return target == StatusExpired || target == StatusCancelled
	default:
		return false
	}
}

var ValidStatuses = map[Status]bool{
	StatusActive:    true,
	StatusExpired:   true,
	StatusCancelled: true,
}
