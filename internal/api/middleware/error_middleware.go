package middleware

import (
	"errors"
	"net/http"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/task"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/Hirax19/Portfolio-TaskManagerPro/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// RequestID attaches a correlation id to every request. Failure responses
// carry it so support can match a report to the server logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// GetRequestID returns the correlation id for the current request.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// ErrorMapper converts domain errors attached via c.Error into responses.
// Handlers stay free of status-code mapping; every operation funnels its
// failures through here.
func ErrorMapper(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := GetRequestID(c)

		var validationErrs user.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})

		case errors.Is(err, task.ErrTaskNotFound),
			errors.Is(err, task.ErrIDMismatch),
			errors.Is(err, user.ErrUserNotFound),
			errors.Is(err, roles.ErrRoleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		case errors.Is(err, task.ErrInvalidInput),
			errors.Is(err, roles.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		case errors.Is(err, task.ErrConflict):
			log.Error("unrecoverable concurrency conflict",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestID),
				zap.Error(err))
			c.JSON(http.StatusConflict, gin.H{
				"error":      "The record was modified by another user. Reload and try again.",
				"request_id": requestID,
			})

		default:
			log.Error("unhandled error",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("request_id", requestID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "An unexpected error occurred. Try again later.",
				"request_id": requestID,
			})
		}
	}
}

// Recovery converts panics into the generic error response instead of
// crashing the process.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := GetRequestID(c)
		log.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestID),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "An unexpected error occurred. Try again later.",
			"request_id": requestID,
		})
	})
}
