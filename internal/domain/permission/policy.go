package permission

import "github.com/sahay-inc/sahay/internal/domain/user"

// Resources guarded by role policies. Ownership checks on a caller's own
// records happen in the usecases, not here.
const (
	ResourceTeleRequests   = "tele_requests"
	ResourcePrescriptions  = "prescriptions"
	ResourceTherapyModules = "therapy_modules"
	ResourceComplaints     = "complaints"
	ResourceEscalations    = "escalations"
	ResourceAnchors        = "anchors"
	ResourceAnalytics      = "analytics"
	ResourceDashboards     = "dashboards"
	ResourceAudit          = "audit"
	ResourceUsers          = "users"
)

const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionReview  = "review"
	ActionRun     = "run"
	ActionVerify  = "verify"
	ActionRetry   = "retry"
	ActionRefresh = "refresh"
	ActionManage  = "manage"
)

// DefaultPolicies is the built-in grant table. Citizen-facing routes are
// guarded by authentication and ownership alone and do not appear here.
func DefaultPolicies() [][]string {
	return [][]string{
		{user.RoleClinician.String(), ResourceTeleRequests, ActionUpdate},
		{user.RoleClinician.String(), ResourcePrescriptions, ActionCreate},
		{user.RoleClinician.String(), ResourceTherapyModules, ActionManage},

		{user.RoleDistrictOfficer.String(), ResourceComplaints, ActionRead},
		{user.RoleDistrictOfficer.String(), ResourceComplaints, ActionReview},
		{user.RoleDistrictOfficer.String(), ResourceAnchors, ActionVerify},
		{user.RoleDistrictOfficer.String(), ResourceAnalytics, ActionRead},
		{user.RoleDistrictOfficer.String(), ResourceDashboards, ActionRead},

		{user.RoleNationalAdmin.String(), ResourceEscalations, ActionRun},
		{user.RoleNationalAdmin.String(), ResourceAnchors, ActionRetry},
		{user.RoleNationalAdmin.String(), ResourceDashboards, ActionRefresh},
		{user.RoleNationalAdmin.String(), ResourceAudit, ActionVerify},
		{user.RoleNationalAdmin.String(), ResourceUsers, ActionManage},
	}
}

// RoleInheritance links each senior officer role to the one below it, so a
// grant to district_officer reaches state and national officers too.
func RoleInheritance() [][]string {
	return [][]string{
		{user.RoleStateOfficer.String(), user.RoleDistrictOfficer.String()},
		{user.RoleNationalAdmin.String(), user.RoleStateOfficer.String()},
	}
}
