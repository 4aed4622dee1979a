package telemed

import "fmt"

// Status is the teleconsultation request lifecycle state.
type Status string

const (
	StatusRequested  Status = "requested"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var validStatuses = map[Status]bool{
	StatusRequested:  true,
	StatusScheduled:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// statusTransitions is strictly linear; completed is terminal.
var statusTransitions = map[Status][]Status{
	StatusRequested:  {StatusScheduled},
	StatusScheduled:  {StatusInProgress},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
}

// NewStatus parses a string into a Status.
func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid tele request status: %s", s)
	}
	return status, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool { return validStatuses[s] }

func (s Status) IsTerminal() bool { return s == StatusCompleted }

// CanTransitionTo reports whether the move to target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
