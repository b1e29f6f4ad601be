package handlers

import (
	"net/http"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/dto"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/config"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles HTTP requests for account and role management
type UserHandler struct {
	userService user.Service
	authConfig  config.AuthConfig
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService user.Service, authConfig config.AuthConfig) *UserHandler {
	return &UserHandler{userService: userService, authConfig: authConfig}
}

// ListUsers returns every account together with its effective role.
func (h *UserHandler) ListUsers(c *gin.Context) {
	view, err := h.userService.ListWithRoles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	users := make([]dto.UserWithRoleResponse, len(view))
	for i, entry := range view {
		users[i] = dto.UserWithRoleResponse{
			UserID:   entry.UserID.String(),
			UserName: entry.UserName,
			Role:     entry.Role,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.UserListResponse{Users: users}})
}

// CreateUser registers a new account. Identity rejections (weak password,
// duplicate email) come back as field-scoped messages.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.userService.CreateUser(c.Request.Context(), user.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.UserWithRoleResponse{
		UserID:   created.ID.String(),
		UserName: created.Username,
		Role:     user.NoRoleAssigned,
	}})
}

// GetRolesForManagement returns an account's current role and the catalog of
// assignable roles.
func (h *UserHandler) GetRolesForManagement(c *gin.Context) {
	userIDStr := c.Param("id")
	if userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user ID cannot be empty"})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	view, err := h.userService.RolesForManagement(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.RoleManagementResponse{
		UserID:         view.UserID.String(),
		UserName:       view.UserName,
		Role:           view.Role,
		AvailableRoles: view.AvailableRoles,
	}})
}

// AssignRole replaces whatever role an account holds with the requested one.
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), userID, req.Role); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role assigned"})
}

// Login authenticates an account and issues a JWT carrying its identity and
// effective role.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	role, err := h.userService.EffectiveRole(c.Request.Context(), account.ID)
	if err != nil {
		c.Error(err)
		return
	}

	token, err := auth.GenerateToken(
		account.ID,
		account.Email,
		account.Username,
		role,
		h.authConfig.JWTSecret,
		h.authConfig.JWTIssuer,
		h.authConfig.JWTExpiryHours,
	)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.LoginResponse{
		Token:    token,
		UserID:   account.ID.String(),
		UserName: account.Username,
		Role:     role,
	}})
}
