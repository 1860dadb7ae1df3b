package repository

import (
	"database/sql"
	"time"

	"blogapi/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	ListUsers() ([]*models.User, error)
	AssignRole(userID int64, roleID *int64) error
	DeleteUser(id int64) error
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

// userRow carries the user columns plus the joined role columns, which are
// NULL for users without a role.
type userRow struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	RoleID       sql.NullInt64  `db:"role_id"`
	RoleName     sql.NullString `db:"role_name"`
}

func (r userRow) toUser() *models.User {
	user := &models.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
	if r.RoleID.Valid {
		user.Role = &models.Role{ID: r.RoleID.Int64, Name: r.RoleName.String}
	}
	return user
}

const userSelect = `
	SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.role_id, r.name AS role_name
	FROM users u
	LEFT JOIN roles r ON u.role_id = r.id`

func (r *userRepository) CreateUser(user *models.User) error {
	var roleID *int64
	if user.Role != nil {
		roleID = &user.Role.ID
	}
	query := `INSERT INTO users (username, email, password_hash, role_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return r.db.QueryRowx(query, user.Username, user.Email, user.PasswordHash, roleID).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var row userRow
	err := r.db.Get(&row, userSelect+` WHERE u.username = $1`, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, err
	}
	return row.toUser(), nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	var row userRow
	err := r.db.Get(&row, userSelect+` WHERE u.id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return row.toUser(), nil
}

func (r *userRepository) ListUsers() ([]*models.User, error) {
	var rows []userRow
	err := r.db.Select(&rows, userSelect+` ORDER BY u.id`)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, nil
}

// AssignRole sets the user's role. A nil roleID clears the role, leaving the
// user with none.
func (r *userRepository) AssignRole(userID int64, roleID *int64) error {
	query := `UPDATE users SET role_id = $1 WHERE id = $2`
	_, err := r.db.Exec(query, roleID, userID)
	return err
}

// DeleteUser removes the user and everything they own in one transaction.
// Comments the user wrote, comments on the user's posts and the posts
// themselves go first so the foreign keys stay satisfied.
func (r *userRepository) DeleteUser(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM comments WHERE author_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE author_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE author_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
