package reservation

// Status is the reservation lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further status mutation is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Blocking reports whether the reservation holds its vehicle's dates,
// i.e. participates in conflict checking.
func (s Status) Blocking() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusActive:
		return true
	default:
		return false
	}
}

// BlockingStatuses are the states considered by the conflict checker.
var BlockingStatuses = []Status{StatusPending, StatusConfirmed, StatusActive}

// allowedTransitions is the legal state machine as a directed graph.
// Terminal states have no outgoing edges.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusActive, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to Status) bool {
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
