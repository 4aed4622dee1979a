package user

import "fmt"

// Role is one of the closed set of platform roles. Route-level permissions
// are derived from roles by the enforcer; the domain only knows the set.
type Role string

const (
	RoleCitizen         Role = "citizen"
	RoleCaregiver       Role = "caregiver"
	RoleASHA            Role = "asha"
	RoleClinician       Role = "clinician"
	RoleDistrictOfficer Role = "district_officer"
	RoleStateOfficer    Role = "state_officer"
	RoleNationalAdmin   Role = "national_admin"
)

var validRoles = map[Role]bool{
	RoleCitizen:         true,
	RoleCaregiver:       true,
	RoleASHA:            true,
	RoleClinician:       true,
	RoleDistrictOfficer: true,
	RoleStateOfficer:    true,
	RoleNationalAdmin:   true,
}

// officerRank orders the officer roles for dashboard access checks.
// Non-officer roles have rank 0.
var officerRank = map[Role]int{
	RoleDistrictOfficer: 1,
	RoleStateOfficer:    2,
	RoleNationalAdmin:   3,
}

// NewRole parses a string into a Role.
func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool { return validRoles[r] }

// IsOfficer reports whether the role is a government officer role.
func (r Role) IsOfficer() bool { return officerRank[r] > 0 }

// AtLeast reports whether the role's officer rank meets or exceeds other's.
func (r Role) AtLeast(other Role) bool {
	return officerRank[r] >= officerRank[other] && officerRank[other] > 0
}

// AllRoles returns the closed set of valid roles.
func AllRoles() []Role {
	return []Role{
		RoleCitizen,
		RoleCaregiver,
		RoleASHA,
		RoleClinician,
		RoleDistrictOfficer,
		RoleStateOfficer,
		RoleNationalAdmin,
	}
}
