package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/security/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, s *testStack, email, role string) *user.User {
	t.Helper()
	ctx := context.Background()

	account, err := s.userService.CreateUser(ctx, user.CreateUserInput{
		Email:    email,
		Password: "Account@123",
	})
	require.NoError(t, err)

	if role != "" {
		require.NoError(t, s.userService.AssignRole(ctx, account.ID, role))
	}
	return account
}

func TestListUsersEndpoint(t *testing.T) {
	s := setupTestStack(t)
	seedAccount(t, s, "admin@taskmanagerpro.com", roles.RoleAdmin)
	seedAccount(t, s, "norole@taskmanagerpro.com", "")

	w := s.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	users := data["users"].([]interface{})
	require.Len(t, users, 2)

	first := users[0].(map[string]interface{})
	assert.Equal(t, "admin@taskmanagerpro.com", first["username"])
	assert.Equal(t, roles.RoleAdmin, first["role"])

	second := users[1].(map[string]interface{})
	assert.Equal(t, "norole@taskmanagerpro.com", second["username"])
	assert.Equal(t, user.NoRoleAssigned, second["role"])
}

func TestCreateUserEndpoint(t *testing.T) {
	s := setupTestStack(t)

	w := s.do(t, http.MethodPost, "/api/users", map[string]interface{}{
		"email":    "fresh@taskmanagerpro.com",
		"password": "Fresh@123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "fresh@taskmanagerpro.com", data["username"])
	assert.Equal(t, user.NoRoleAssigned, data["role"])

	// Identity rejections come back field-scoped, all at once.
	w = s.do(t, http.MethodPost, "/api/users", map[string]interface{}{
		"email":    "weak@taskmanagerpro.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decodeBody(t, w)["errors"].([]interface{})
	assert.NotEmpty(t, errs)
}

func TestGetRolesForManagementEndpoint(t *testing.T) {
	s := setupTestStack(t)
	account := seedAccount(t, s, "manage@taskmanagerpro.com", roles.RoleManager)

	w := s.do(t, http.MethodGet, "/api/users/"+account.ID.String()+"/roles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, roles.RoleManager, data["role"])
	available := data["available_roles"].([]interface{})
	assert.Equal(t, []interface{}{roles.RoleAdmin, roles.RoleManager, roles.RoleUser}, available)

	w = s.do(t, http.MethodGet, "/api/users/not-a-uuid/roles", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/users/00000000-0000-0000-0000-000000000001/roles", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignRoleEndpoint(t *testing.T) {
	s := setupTestStack(t)
	ctx := context.Background()
	account := seedAccount(t, s, "promote@taskmanagerpro.com", roles.RoleManager)

	w := s.do(t, http.MethodPost, "/api/users/roles", map[string]interface{}{
		"user_id": account.ID.String(),
		"role":    roles.RoleAdmin,
	})
	require.Equal(t, http.StatusOK, w.Code)

	role, err := s.userService.EffectiveRole(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.RoleAdmin, role)

	// Submitting without a role selection is a bad request and changes nothing.
	w = s.do(t, http.MethodPost, "/api/users/roles", map[string]interface{}{
		"user_id": account.ID.String(),
		"role":    "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	role, err = s.userService.EffectiveRole(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.RoleAdmin, role)

	w = s.do(t, http.MethodPost, "/api/users/roles", map[string]interface{}{
		"user_id": "00000000-0000-0000-0000-000000000001",
		"role":    roles.RoleUser,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	s := setupTestStack(t)
	account := seedAccount(t, s, "login@taskmanagerpro.com", roles.RoleUser)

	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "login@taskmanagerpro.com",
		"password": "Account@123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, account.ID.String(), data["user_id"])
	assert.Equal(t, roles.RoleUser, data["role"])

	// The issued token carries the account identity and role.
	claims, err := auth.ValidateToken(data["token"].(string), "test-secret")
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, roles.RoleUser, claims.Role)

	w = s.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "login@taskmanagerpro.com",
		"password": "Wrong@123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
