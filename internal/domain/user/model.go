package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoRoleAssigned is the sentinel shown for accounts without a role.
const NoRoleAssigned = "No role assigned"

// User represents an account. Email doubles as the login and, through
// Username, as the display name tasks are assigned to.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Email        string    `json:"email" gorm:"uniqueIndex:idx_user_email;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex:idx_user_username;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserWithRole is the flat listing view combining account identity with the
// account's single effective role.
type UserWithRole struct {
	UserID   uuid.UUID `json:"user_id"`
	UserName string    `json:"username"`
	Role     string    `json:"role"`
}

// RoleManagementView carries an account's current role plus the catalog of
// assignable role names.
type RoleManagementView struct {
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"username"`
	Role           string    `json:"role"`
	AvailableRoles []string  `json:"available_roles"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before creating a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
