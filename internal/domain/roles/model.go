package roles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeded role names. The catalog is open: administrators may create more.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// Role represents a named role in the system
type Role struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRole links accounts to roles. The table is many-to-many capable; the
// service layer narrows each account to at most one effective role.
type UserRole struct {
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_user_roles_user"`
	RoleID    uuid.UUID `json:"role_id" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook for Role
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
