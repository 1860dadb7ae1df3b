package repository

import (
	"fmt"

	"blogapi/internal/crypto"
	"blogapi/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DefaultAdminUsername is the bootstrap account created on first start so a
// fresh deployment has someone who can assign roles.
const DefaultAdminUsername = "admin"

var seedRoles = []string{"admin", "author", "user"}

// Seed makes sure the built-in roles exist and creates the default admin
// user if it is missing.
func Seed(db *sqlx.DB, adminPassword string, logger *zap.Logger) error {
	roles := NewRoleRepository(db, logger)
	users := NewUserRepository(db, logger)

	for _, name := range seedRoles {
		if err := roles.EnsureRole(name); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", name, err)
		}
	}

	admin, err := users.GetUserByUsername(DefaultAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if admin != nil {
		return nil
	}

	adminRole, err := roles.GetRoleByName("admin")
	if err != nil {
		return fmt.Errorf("failed to look up admin role: %w", err)
	}

	passwordHash, err := crypto.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin = &models.User{
		Username:     DefaultAdminUsername,
		Email:        "admin@example.com",
		PasswordHash: passwordHash,
		Role:         adminRole,
	}
	if err := users.CreateUser(admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created default admin user", zap.String("username", DefaultAdminUsername))
	return nil
}
