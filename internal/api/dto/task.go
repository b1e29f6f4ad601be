package dto

import "time"

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required" example:"Server Onderhoud"`
	Description string    `json:"description" example:"Zorg ervoor dat alle servers up-to-date zijn."`
	Deadline    time.Time `json:"deadline,omitempty" example:"2025-12-31T23:59:59Z"`
	Progress    int       `json:"progress" example:"50"`
	AssignedTo  string    `json:"assigned_to" example:"admin@taskmanagerpro.com"`
}

// UpdateTaskRequest carries the full replacement state of a task. ID must
// equal the id in the request path; an omitted id binds to zero and fails
// the same mismatch check.
type UpdateTaskRequest struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline,omitempty"`
	Progress    int       `json:"progress"`
	AssignedTo  string    `json:"assigned_to"`
}

// TaskResponse represents the response for task operations
type TaskResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Progress    int       `json:"progress"`
	AssignedTo  string    `json:"assigned_to"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskListResponse represents the response for listing tasks
type TaskListResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	SortOrder string         `json:"sort_order,omitempty"`
}

// AssigneeOptionsResponse lists the usernames offered by the task forms.
type AssigneeOptionsResponse struct {
	Usernames []string `json:"usernames"`
}
