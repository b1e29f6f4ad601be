package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/dto"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/task"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	service     task.Service
	userService user.Service
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(service task.Service, userService user.Service) *TaskHandler {
	return &TaskHandler{service: service, userService: userService}
}

func taskToResponse(t *task.TaskItem) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Progress:    t.Progress,
		AssignedTo:  t.AssignedTo,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToListResponse(tasks []task.TaskItem, sortOrder string) dto.TaskListResponse {
	responses := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = taskToResponse(&tasks[i])
	}
	return dto.TaskListResponse{Tasks: responses, SortOrder: sortOrder}
}

// ListTasks returns every task, ordered by the sortOrder query parameter.
// Unrecognized sort orders fall back to title ascending.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	sortOrder := c.Query("sortOrder")

	tasks, err := h.service.ListTasks(c.Request.Context(), sortOrder, nil)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tasksToListResponse(tasks, sortOrder)})
}

// ListUserTasks returns the tasks assigned to one account's username.
func (h *TaskHandler) ListUserTasks(c *gin.Context) {
	userIDStr := c.Param("user_id")
	if userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user ID is required"})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	account, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	sortOrder := c.Query("sortOrder")
	tasks, err := h.service.ListTasks(c.Request.Context(), sortOrder, &account.Username)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tasksToListResponse(tasks, sortOrder)})
}

// GetTask returns a single task by id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// Missing or malformed id is "not found" without touching the store.
		c.JSON(http.StatusNotFound, gin.H{"error": task.ErrTaskNotFound.Error()})
		return
	}

	t, err := h.service.GetTask(c.Request.Context(), uint(id))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(t)})
}

// AssigneeOptions returns the usernames offered by the create/edit forms.
func (h *TaskHandler) AssigneeOptions(c *gin.Context) {
	usernames, err := h.userService.AssigneeOptions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AssigneeOptionsResponse{Usernames: usernames}})
}

// CreateTask persists a new task. Title is the only required field.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Progress:    req.Progress,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": taskToResponse(created)})
}

// UpdateTask replaces the task addressed by the path id. The payload id must
// match the path id.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": task.ErrTaskNotFound.Error()})
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), uint(id), task.UpdateTaskInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Progress:    req.Progress,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": taskToResponse(updated)})
}

// DeleteTask removes a task. Deleting an already-absent task reports not
// found; the first delete wins.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": task.ErrTaskNotFound.Error()})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), uint(id)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
