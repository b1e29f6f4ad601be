package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/handlers"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/middleware"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/api/routes"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/task"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/infrastructure/persistence/postgres/connection"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/config"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/logger"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/security/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
	}
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.ErrorMapper(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Content-Type",
			"Authorization",
			"X-Request-ID",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"X-Request-ID",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if cfg.Seed.Enabled {
		if err := migrations.Seed(context.Background(), db, log.Logger, cfg.Seed.AdminPassword); err != nil {
			log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// Repositories
	taskRepo := task.NewRepository(db.DB)
	userRepo := user.NewRepository(db.DB)
	rolesRepo := roles.NewRepository(db.DB)

	// Services
	rolesService := roles.NewService(rolesRepo)
	userService := user.NewService(userRepo, rolesService, log.Logger)
	taskService := task.NewService(taskRepo, log.Logger)

	// Optional redis-backed rate limiting on the login route
	var rateLimiter auth.RateLimiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, login rate limiting disabled", zap.Error(err))
		} else {
			rateLimiter = auth.NewRedisRateLimiter(redisClient, 1*time.Minute, 20)
		}
	}

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService, userService)
	userHandler := handlers.NewUserHandler(userService, cfg.Auth)

	// Routes
	routes.SetupHealthRoutes(router)

	taskRoutes := routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret, log)
	taskRoutes.RegisterRoutes(router)
	log.Info("Registered task routes at /api/tasks")

	userRoutes := routes.NewUserRoutes(userHandler, cfg.Auth.JWTSecret, log, rateLimiter)
	userRoutes.RegisterRoutes(router)
	log.Info("Registered user routes at /api/users")

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
