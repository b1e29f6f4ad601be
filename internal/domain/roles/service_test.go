package roles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Role{}, &UserRole{}))
	return NewService(NewRepository(db))
}

func seedRoles(t *testing.T, svc Service) {
	t.Helper()
	for _, name := range []string{RoleAdmin, RoleManager, RoleUser} {
		_, err := svc.CreateRole(context.Background(), name)
		require.NoError(t, err)
	}
}

func TestCreateRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, "Auditor")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, role.ID)
	assert.Equal(t, "Auditor", role.Name)

	_, err = svc.CreateRole(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListRoleNames(t *testing.T) {
	svc := newTestService(t)
	seedRoles(t, svc)

	names, err := svc.ListRoleNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{RoleAdmin, RoleManager, RoleUser}, names)
}

func TestEffectiveRoleWithoutMembership(t *testing.T) {
	svc := newTestService(t)

	role, err := svc.EffectiveRole(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, role)
}

func TestAssignRoleReplacesExisting(t *testing.T) {
	svc := newTestService(t)
	seedRoles(t, svc)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.AssignRole(ctx, userID, RoleManager))

	role, err := svc.EffectiveRole(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, role)

	// Reassignment clears the previous membership; the account ends up with
	// exactly the new role, never both.
	require.NoError(t, svc.AssignRole(ctx, userID, RoleAdmin))

	role, err = svc.EffectiveRole(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}

func TestAssignRoleValidation(t *testing.T) {
	svc := newTestService(t)
	seedRoles(t, svc)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.AssignRole(ctx, userID, RoleUser))

	assert.ErrorIs(t, svc.AssignRole(ctx, userID, ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.AssignRole(ctx, userID, "Nonexistent"), ErrRoleNotFound)

	// Failed assignments leave the current role untouched.
	role, err := svc.EffectiveRole(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)
}
