package migrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/roles"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/task"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/domain/user"
	"github.com/Hirax19/Portfolio-TaskManagerPro/internal/infrastructure/persistence/postgres/connection"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedAccount struct {
	email    string
	password string
	role     string
}

// Seed creates the default roles, accounts and sample tasks. Roles and
// accounts are created only when missing; tasks only when the table is empty.
// A non-empty adminPassword overrides the default admin account password.
func Seed(ctx context.Context, db *connection.Database, logger *zap.Logger, adminPassword string) error {
	roleNames := []string{roles.RoleAdmin, roles.RoleManager, roles.RoleUser}
	for _, name := range roleNames {
		var role roles.Role
		err := db.WithContext(ctx).First(&role, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.WithContext(ctx).Create(&roles.Role{Name: name}).Error; err != nil {
				return fmt.Errorf("seeding role %s: %w", name, err)
			}
		} else if err != nil {
			return err
		}
	}

	if adminPassword == "" {
		adminPassword = "Admin@123"
	}
	accounts := []seedAccount{
		{email: "admin@taskmanagerpro.com", password: adminPassword, role: roles.RoleAdmin},
		{email: "manager@taskmanagerpro.com", password: "Manager@123", role: roles.RoleManager},
		{email: "user@taskmanagerpro.com", password: "User@123", role: roles.RoleUser},
	}

	seeded := make(map[string]user.User, len(accounts))
	for _, acc := range accounts {
		var existing user.User
		err := db.WithContext(ctx).First(&existing, "email = ?", acc.email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			existing = user.User{
				Email:        acc.email,
				Username:     acc.email,
				PasswordHash: string(hash),
			}
			if err := db.WithContext(ctx).Create(&existing).Error; err != nil {
				return fmt.Errorf("seeding account %s: %w", acc.email, err)
			}

			var role roles.Role
			if err := db.WithContext(ctx).First(&role, "name = ?", acc.role).Error; err != nil {
				return err
			}
			if err := db.WithContext(ctx).Create(&roles.UserRole{
				UserID: existing.ID,
				RoleID: role.ID,
			}).Error; err != nil {
				return fmt.Errorf("seeding role link for %s: %w", acc.email, err)
			}
			logger.Info("seeded account", zap.String("email", acc.email), zap.String("role", acc.role))
		} else if err != nil {
			return err
		}
		seeded[acc.role] = existing
	}

	var taskCount int64
	if err := db.WithContext(ctx).Model(&task.TaskItem{}).Count(&taskCount).Error; err != nil {
		return err
	}
	if taskCount > 0 {
		return nil
	}

	now := time.Now()
	admin := seeded[roles.RoleAdmin].Username
	manager := seeded[roles.RoleManager].Username
	regular := seeded[roles.RoleUser].Username

	tasks := []task.TaskItem{
		{Title: "Server Onderhoud", Description: "Zorg ervoor dat alle servers up-to-date zijn en veilig draaien.", Deadline: now.AddDate(0, 0, 7), Progress: 50, AssignedTo: admin},
		{Title: "Nieuwe Beveiligingsbeleid", Description: "Ontwikkel en implementeer een nieuw beveiligingsbeleid voor de organisatie.", Deadline: now.AddDate(0, 0, 10), Progress: 75, AssignedTo: admin},
		{Title: "Incident Responsplan", Description: "Creëer een responsplan voor mogelijke beveiligingsincidenten.", Deadline: now.AddDate(0, 0, 12), Progress: 40, AssignedTo: admin},
		{Title: "Teamvergadering plannen", Description: "Plan een vergadering om de voortgang van het project te bespreken.", Deadline: now.AddDate(0, 0, 5), Progress: 75, AssignedTo: manager},
		{Title: "Projectrapportage", Description: "Maak een rapport over de voortgang van het huidige project.", Deadline: now.AddDate(0, 0, 10), Progress: 0, AssignedTo: manager},
		{Title: "Budget Evaluatie", Description: "Evalueer het budget voor het volgende kwartaal.", Deadline: now.AddDate(0, 0, 8), Progress: 70, AssignedTo: manager},
		{Title: "Gebruikershandleiding bijwerken", Description: "Werk de gebruikershandleiding bij voor de nieuwste softwareversie.", Deadline: now.AddDate(0, 0, 3), Progress: 100, AssignedTo: regular},
		{Title: "Klantenondersteuning", Description: "Beantwoord vragen van klanten en los technische problemen op.", Deadline: now.AddDate(0, 0, 4), Progress: 60, AssignedTo: regular},
		{Title: "Nieuwe software testen", Description: "Test de nieuwe software update voordat deze wordt uitgerold.", Deadline: now.AddDate(0, 0, 6), Progress: 30, AssignedTo: regular},
	}

	if err := db.WithContext(ctx).Create(&tasks).Error; err != nil {
		return fmt.Errorf("seeding tasks: %w", err)
	}

	logger.Info("seeded sample tasks", zap.Int("count", len(tasks)))
	return nil
}
