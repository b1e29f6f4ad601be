package migrations

import (
	"fmt"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/task"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/infrastructure/persistence/postgres/connection"
	"go.uber.org/zap"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	// Enable UUID extension for PostgreSQL
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Warn("Could not enable uuid-ossp extension", zap.Error(err))
	}

	models := []interface{}{
		&user.User{},
		&roles.Role{},
		&roles.UserRole{},
		&task.TaskItem{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			logger.Error("Migration failed", zap.Error(err))
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logger.Info("Database migration completed")
	return nil
}
