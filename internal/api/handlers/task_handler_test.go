package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/middleware"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/task"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/config"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testStack struct {
	router       *gin.Engine
	taskService  task.Service
	userService  user.Service
	rolesService roles.Service
}

// setupTestStack wires real services over an in-memory database behind the
// HTTP handlers, with the same error funnel the server uses. Auth middleware
// is left out; token handling has its own tests.
func setupTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &roles.Role{}, &roles.UserRole{}, &task.TaskItem{}))

	rolesService := roles.NewService(roles.NewRepository(db))
	for _, name := range []string{roles.RoleAdmin, roles.RoleManager, roles.RoleUser} {
		_, err := rolesService.CreateRole(context.Background(), name)
		require.NoError(t, err)
	}

	userService := user.NewService(user.NewRepository(db), rolesService, zap.NewNop())
	taskService := task.NewService(task.NewRepository(db), zap.NewNop())

	log := logger.NewLogger("error")
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorMapper(log))

	taskHandler := NewTaskHandler(taskService, userService)
	userHandler := NewUserHandler(userService, config.AuthConfig{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		JWTIssuer:      "taskmanagerpro",
	})

	router.GET("/api/tasks", taskHandler.ListTasks)
	router.GET("/api/tasks/options", taskHandler.AssigneeOptions)
	router.GET("/api/tasks/user/:user_id", taskHandler.ListUserTasks)
	router.GET("/api/tasks/:id", taskHandler.GetTask)
	router.POST("/api/tasks", taskHandler.CreateTask)
	router.PUT("/api/tasks/:id", taskHandler.UpdateTask)
	router.DELETE("/api/tasks/:id", taskHandler.DeleteTask)

	router.GET("/api/users", userHandler.ListUsers)
	router.POST("/api/users", userHandler.CreateUser)
	router.GET("/api/users/:id/roles", userHandler.GetRolesForManagement)
	router.POST("/api/users/roles", userHandler.AssignRole)
	router.POST("/api/auth/login", userHandler.Login)

	return &testStack{
		router:       router,
		taskService:  taskService,
		userService:  userService,
		rolesService: rolesService,
	}
}

func (s *testStack) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seedTask(t *testing.T, s *testStack, title, assignedTo string, progress int) *task.TaskItem {
	t.Helper()
	created, err := s.taskService.CreateTask(context.Background(), task.CreateTaskInput{
		Title:      title,
		Deadline:   time.Now().AddDate(0, 0, 7),
		Progress:   progress,
		AssignedTo: assignedTo,
	})
	require.NoError(t, err)
	return created
}

func TestListTasksEndpoint(t *testing.T) {
	s := setupTestStack(t)
	seedTask(t, s, "Beta", "", 30)
	seedTask(t, s, "Alpha", "", 70)

	w := s.do(t, http.MethodGet, "/api/tasks?sortOrder=title_desc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	tasks := data["tasks"].([]interface{})
	require.Len(t, tasks, 2)
	assert.Equal(t, "Beta", tasks[0].(map[string]interface{})["title"])
	assert.Equal(t, "Alpha", tasks[1].(map[string]interface{})["title"])
	assert.Equal(t, "title_desc", data["sort_order"])
}

func TestGetTaskEndpoint(t *testing.T) {
	s := setupTestStack(t)
	created := seedTask(t, s, "Lookup", "", 0)

	w := s.do(t, http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Lookup", data["title"])

	// Unknown and malformed ids both read as not found.
	w = s.do(t, http.MethodGet, "/api/tasks/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/tasks/not-a-number", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTaskEndpoint(t *testing.T) {
	s := setupTestStack(t)

	w := s.do(t, http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":       "New task",
		"description": "Created over HTTP",
		"progress":    10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "New task", data["title"])
	assert.NotZero(t, data["id"])

	w = s.do(t, http.MethodPost, "/api/tasks", map[string]interface{}{
		"description": "Missing title",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTaskEndpoint(t *testing.T) {
	s := setupTestStack(t)
	created := seedTask(t, s, "Before", "", 10)

	w := s.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]interface{}{
		"id":       created.ID,
		"title":    "After",
		"progress": 80,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "After", data["title"])
	// The payload carried no deadline; the stored one must not become zero.
	assert.NotEqual(t, "0001-01-01T00:00:00Z", data["deadline"])

	// A payload id that disagrees with the path id reads as not found.
	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]interface{}{
		"id":    created.ID + 1,
		"title": "Mismatch",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// So does a payload with no id at all: it binds to zero and fails the
	// same mismatch check.
	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), map[string]interface{}{
		"title": "No id",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTaskEndpoint(t *testing.T) {
	s := setupTestStack(t)
	created := seedTask(t, s, "Disposable", "", 0)

	w := s.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUserTasksEndpoint(t *testing.T) {
	s := setupTestStack(t)
	ctx := context.Background()

	account, err := s.userService.CreateUser(ctx, user.CreateUserInput{
		Email:    "worker@taskmanagerpro.com",
		Password: "Worker@123",
	})
	require.NoError(t, err)

	seedTask(t, s, "Mine", account.Username, 10)
	seedTask(t, s, "Also mine", account.Username, 20)
	seedTask(t, s, "Someone else's", "other@taskmanagerpro.com", 30)

	w := s.do(t, http.MethodGet, "/api/tasks/user/"+account.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	tasks := data["tasks"].([]interface{})
	require.Len(t, tasks, 2)
	for _, entry := range tasks {
		assert.Equal(t, account.Username, entry.(map[string]interface{})["assigned_to"])
	}

	w = s.do(t, http.MethodGet, "/api/tasks/user/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/tasks/user/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssigneeOptionsEndpoint(t *testing.T) {
	s := setupTestStack(t)
	ctx := context.Background()

	for _, email := range []string{"b@taskmanagerpro.com", "a@taskmanagerpro.com"} {
		_, err := s.userService.CreateUser(ctx, user.CreateUserInput{Email: email, Password: "Option@123"})
		require.NoError(t, err)
	}

	w := s.do(t, http.MethodGet, "/api/tasks/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	usernames := data["usernames"].([]interface{})
	assert.Equal(t, []interface{}{"a@taskmanagerpro.com", "b@taskmanagerpro.com"}, usernames)
}
