package roles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound  = errors.New("role not found")
	ErrDuplicateRole = errors.New("role already exists")
)

// Repository interface for role persistence operations
type Repository interface {
	CreateRole(ctx context.Context, role *Role) error
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)

	GetUserRoles(ctx context.Context, userID uuid.UUID) ([]Role, error)
	ReplaceUserRoles(ctx context.Context, userID, roleID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new roles repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRole(ctx context.Context, role *Role) error {
	result := r.db.WithContext(ctx).Create(role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRole
		}
		return result.Error
	}
	return nil
}

func (r *repository) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	var role Role
	result := r.db.WithContext(ctx).First(&role, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}
	return &role, nil
}

func (r *repository) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	result := r.db.WithContext(ctx).Order("name ASC").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}
	return roles, nil
}

func (r *repository) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("user_roles.created_at ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// ReplaceUserRoles removes every role the account holds and assigns exactly
// the given role, in one transaction. A failure on either step rolls back
// both, so a partial failure can never leave the account roleless.
func (r *repository) ReplaceUserRoles(ctx context.Context, userID, roleID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&UserRole{}).Error; err != nil {
			return err
		}
		return tx.Create(&UserRole{
			UserID: userID,
			RoleID: roleID,
		}).Error
	})
}
