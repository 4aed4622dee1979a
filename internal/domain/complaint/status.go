package complaint

import "fmt"

// Status is the complaint lifecycle state.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusInProgress  Status = "in_progress"
	StatusResolved    Status = "resolved"
	StatusClosed      Status = "closed"
	StatusEscalated   Status = "escalated"
)

var validStatuses = map[Status]bool{
	StatusDraft:       true,
	StatusSubmitted:   true,
	StatusUnderReview: true,
	StatusInProgress:  true,
	StatusResolved:    true,
	StatusClosed:      true,
	StatusEscalated:   true,
}

// statusTransitions encodes the lifecycle. Escalated complaints return to
// review or handling after reassignment; closed is terminal.
var statusTransitions = map[Status][]Status{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview, StatusEscalated},
	StatusUnderReview: {StatusInProgress, StatusEscalated},
	StatusInProgress:  {StatusResolved, StatusEscalated},
	StatusResolved:    {StatusClosed},
	StatusEscalated:   {StatusUnderReview, StatusInProgress},
	StatusClosed:      {},
}

// NewStatus parses a string into a Status.
func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid complaint status: %s", s)
	}
	return status, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool { return validStatuses[s] }

func (s Status) IsTerminal() bool { return s == StatusClosed }

// IsActive reports whether the complaint is still being worked and therefore
// subject to SLA escalation.
func (s Status) IsActive() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusInProgress, StatusEscalated:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move to target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
