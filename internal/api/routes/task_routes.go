package routes

import (
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/handlers"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/middleware"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/logger"
	"github.com/gin-gonic/gin"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler   *handlers.TaskHandler
	jwtSecret string
	log       *logger.Logger
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, jwtSecret string, log *logger.Logger) *TaskRoutes {
	return &TaskRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret, r.log))
	tasks.Use(metrics.CollectMetrics())

	tasks.GET("", r.handler.ListTasks)
	tasks.GET("/options", r.handler.AssigneeOptions)
	tasks.GET("/user/:user_id", r.handler.ListUserTasks)
	tasks.GET("/:id", r.handler.GetTask)

	tasks.POST("", r.handler.CreateTask)
	tasks.PUT("/:id", r.handler.UpdateTask)
	tasks.DELETE("/:id", r.handler.DeleteTask)
}
