package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by internal ID
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetBySID retrieves a user by external SID (Stripe-style ID)
	GetBySID(ctx context.Context, sid string) (*User, error)

	// GetByPhone retrieves a user by phone number
	GetByPhone(ctx context.Context, phone string) (*User, error)

	// GetByAlias retrieves a user by alias handle
	GetByAlias(ctx context.Context, alias string) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// List retrieves a paginated list of users
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)

	// ExistsByPhone checks if a user exists by phone number
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// GetRoles returns the role names assigned to a user
	GetRoles(ctx context.Context, userID uint) ([]string, error)

	// AssignRole attaches a role to a user; assigning an existing role is a no-op
	AssignRole(ctx context.Context, userID uint, role Role) error

	// RemoveRole detaches a role from a user
	RemoveRole(ctx context.Context, userID uint, role Role) error
}

// ListFilter represents filtering and pagination options for user list
type ListFilter struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status,omitempty"`
	Role     string `json:"role,omitempty"`
	OrderBy  string `json:"order_by,omitempty"` // field to order by
	Order    string `json:"order,omitempty"`    // asc or desc
}

// TokenRepository defines the interface for access token operations
type TokenRepository interface {
	// Create stores a new access token
	Create(ctx context.Context, token *AccessToken) error

	// GetByHash retrieves a token by its SHA-256 hash
	GetByHash(ctx context.Context, tokenHash string) (*AccessToken, error)

	// Update persists revocation and last-used changes
	Update(ctx context.Context, token *AccessToken) error

	// RevokeAllForUser revokes every live token belonging to a user
	RevokeAllForUser(ctx context.Context, userID uint) error

	// DeleteExpired removes tokens expired before the retention cutoff
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	// Create creates a profile row
	Create(ctx context.Context, profile *Profile) error

	// GetByUserID retrieves the profile for a user
	GetByUserID(ctx context.Context, userID uint) (*Profile, error)

	// Update persists profile changes
	Update(ctx context.Context, profile *Profile) error
}
