package models

import "time"

// UserModel represents the database persistence model for users.
// This is the anti-corruption layer between domain and database.
type UserModel struct {
	ID           uint    `gorm:"primarykey"`
	SID          string  `gorm:"uniqueIndex;not null;size:32"`
	Phone        *string `gorm:"uniqueIndex;size:20"`
	Alias        string  `gorm:"size:100;index"`
	PasswordHash string  `gorm:"size:255"`
	Status       string  `gorm:"not null;default:active;size:20"`
	Version      int     `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRoleModel attaches a role to a user. Roles come from a closed set;
// route permissions derive from them in the enforcer, not here.
type UserRoleModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_role"`
	Role      string `gorm:"not null;size:30;uniqueIndex:idx_user_role"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_roles"
}
