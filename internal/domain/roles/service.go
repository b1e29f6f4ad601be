package roles

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service enforces the single-role business rule: an account has at most one
// effective role even though the underlying link table permits many. The rule
// is deliberate and independent of which identity backend stores the links.
type Service interface {
	CreateRole(ctx context.Context, name string) (*Role, error)
	ListRoleNames(ctx context.Context) ([]string, error)

	// EffectiveRole resolves the single role this system treats the account
	// as having: the first of possibly several memberships, or "" when none.
	EffectiveRole(ctx context.Context, userID uuid.UUID) (string, error)

	// AssignRole clears every role the account currently holds and assigns
	// exactly the named role.
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error
}

type service struct {
	repo Repository
}

// NewService creates a new roles service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRole(ctx context.Context, name string) (*Role, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}

	role := &Role{Name: name}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *service) ListRoleNames(ctx context.Context) ([]string, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.Name
	}
	return names, nil
}

func (s *service) EffectiveRole(ctx context.Context, userID uuid.UUID) (string, error) {
	userRoles, err := s.repo.GetUserRoles(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(userRoles) == 0 {
		return "", nil
	}
	return userRoles[0].Name, nil
}

func (s *service) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	if roleName == "" {
		return ErrInvalidInput
	}

	role, err := s.repo.GetRoleByName(ctx, roleName)
	if err != nil {
		return err
	}

	return s.repo.ReplaceUserRoles(ctx, userID, role.ID)
}
