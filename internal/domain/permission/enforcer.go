package permission

// PermissionEnforcer answers whether a subject may perform an action on a
// resource. Subjects are role slugs taken from the authenticated user;
// grouping links let senior officer roles inherit junior grants.
type PermissionEnforcer interface {
	Enforce(subject string, resource string, action string) (bool, error)
	AddPolicy(role string, resource string, action string) error
	RemovePolicy(role string, resource string, action string) error
	AddRoleForUser(subject string, role string) error
	DeleteRoleForUser(subject string, role string) error
	GetRolesForUser(subject string) ([]string, error)
	GetPermissionsForUser(subject string) ([][]string, error)
	LoadPolicy() error
}
