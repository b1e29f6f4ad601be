package dto

// CreateUserRequest represents the request body for account registration
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@taskmanagerpro.com"`
	Password string `json:"password" binding:"required" example:"User@123"`
}

// UserWithRoleResponse combines account identity with its effective role.
type UserWithRoleResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"username"`
	Role     string `json:"role"`
}

// UserListResponse represents the response for listing accounts with roles
type UserListResponse struct {
	Users []UserWithRoleResponse `json:"users"`
}

// RoleManagementResponse carries an account's current role plus the catalog
// of assignable role names.
type RoleManagementResponse struct {
	UserID         string   `json:"user_id"`
	UserName       string   `json:"username"`
	Role           string   `json:"role"`
	AvailableRoles []string `json:"available_roles"`
}

// AssignRoleRequest represents the request body for role assignment
type AssignRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for successful login
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	UserName string `json:"username"`
	Role     string `json:"role,omitempty"`
}
