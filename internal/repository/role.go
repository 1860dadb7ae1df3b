package repository

import (
	"database/sql"

	"blogapi/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type RoleRepository interface {
	EnsureRole(name string) error
	GetRoleByName(name string) (*models.Role, error)
}

type roleRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRoleRepository(db *sqlx.DB, logger *zap.Logger) RoleRepository {
	return &roleRepository{db: db, logger: logger}
}

// EnsureRole creates the role if it does not exist yet.
func (r *roleRepository) EnsureRole(name string) error {
	query := `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	_, err := r.db.Exec(query, name)
	return err
}

func (r *roleRepository) GetRoleByName(name string) (*models.Role, error) {
	var role models.Role
	query := `SELECT id, name FROM roles WHERE name = $1`
	err := r.db.Get(&role, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Role not found
		}
		return nil, err
	}
	return &role, nil
}
