package routes

import (
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/handlers"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/middleware"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/logger"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/security/auth"
	"github.com/gin-gonic/gin"
)

// UserRoutes handles the setup of account and role management routes
type UserRoutes struct {
	handler     *handlers.UserHandler
	jwtSecret   string
	log         *logger.Logger
	rateLimiter auth.RateLimiter
}

// NewUserRoutes creates a new UserRoutes instance. The rate limiter may be
// nil when Redis is disabled.
func NewUserRoutes(handler *handlers.UserHandler, jwtSecret string, log *logger.Logger, rateLimiter auth.RateLimiter) *UserRoutes {
	return &UserRoutes{
		handler:     handler,
		jwtSecret:   jwtSecret,
		log:         log,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers all account-related routes
func (r *UserRoutes) RegisterRoutes(router *gin.Engine) {
	metrics := middleware.NewMetricsMiddleware()

	// Login is the only public route; brute-force attempts get rate limited.
	authGroup := router.Group("/api/auth")
	if r.rateLimiter != nil {
		authGroup.Use(middleware.RateLimitMiddleware(r.rateLimiter))
	}
	authGroup.POST("/login", r.handler.Login)

	users := router.Group("/api/users")
	users.Use(middleware.NewAuthMiddleware(r.jwtSecret, r.log))
	users.Use(metrics.CollectMetrics())

	users.GET("", r.handler.ListUsers)

	// Account creation and role assignment are administrator operations.
	admin := users.Group("")
	admin.Use(middleware.RequireRole(roles.RoleAdmin))

	admin.POST("", r.handler.CreateUser)
	admin.GET("/:id/roles", r.handler.GetRolesForManagement)
	admin.POST("/roles", r.handler.AssignRole)
}
