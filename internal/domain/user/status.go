package user

import "fmt"

// Status represents the user account status.
type Status string

const (
	StatusActive      Status = "active"
	StatusDeactivated Status = "deactivated"
	StatusErased      Status = "erased"
)

var validStatuses = map[Status]bool{
	StatusActive:      true,
	StatusDeactivated: true,
	StatusErased:      true,
}

var statusTransitions = map[Status][]Status{
	StatusActive: {
		StatusDeactivated,
		StatusErased,
	},
	StatusDeactivated: {
		StatusActive,
		StatusErased,
	},
	// Erased is terminal.
	StatusErased: {},
}

// NewStatus parses a string into a Status.
func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid user status: %s", s)
	}
	return status, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool { return validStatuses[s] }

func (s Status) IsActive() bool { return s == StatusActive }

func (s Status) IsDeactivated() bool { return s == StatusDeactivated }

func (s Status) IsErased() bool { return s == StatusErased }

// CanTransitionTo checks if the current status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo attempts to transition to a new status.
func (s *Status) TransitionTo(target Status) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition from %s to %s", *s, target)
	}
	*s = target
	return nil
}
