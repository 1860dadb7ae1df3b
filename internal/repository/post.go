package repository

import (
	"database/sql"
	"time"

	"blogapi/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id int64) (*models.Post, error)
	ListPosts(offset, limit int) ([]*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id int64) error
}

type postRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostRepository(db *sqlx.DB, logger *zap.Logger) PostRepository {
	return &postRepository{db: db, logger: logger}
}

type postRow struct {
	ID             int64          `db:"id"`
	Title          string         `db:"title"`
	Content        string         `db:"content"`
	AuthorID       int64          `db:"author_id"`
	CreatedAt      time.Time      `db:"created_at"`
	AuthorUsername string         `db:"author_username"`
	AuthorEmail    string         `db:"author_email"`
	RoleID         sql.NullInt64  `db:"role_id"`
	RoleName       sql.NullString `db:"role_name"`
}

func (r postRow) toPost() *models.Post {
	author := &models.User{
		ID:       r.AuthorID,
		Username: r.AuthorUsername,
		Email:    r.AuthorEmail,
	}
	if r.RoleID.Valid {
		author.Role = &models.Role{ID: r.RoleID.Int64, Name: r.RoleName.String}
	}
	return &models.Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		AuthorID:  r.AuthorID,
		Author:    author,
		CreatedAt: r.CreatedAt,
	}
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.author_id, p.created_at,
	       u.username AS author_username, u.email AS author_email,
	       u.role_id, r.name AS role_name
	FROM posts p
	JOIN users u ON p.author_id = u.id
	LEFT JOIN roles r ON u.role_id = r.id`

func (r *postRepository) CreatePost(post *models.Post) error {
	query := `INSERT INTO posts (title, content, author_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.db.QueryRowx(query, post.Title, post.Content, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt)
}

func (r *postRepository) GetPostByID(id int64) (*models.Post, error) {
	var row postRow
	err := r.db.Get(&row, postSelect+` WHERE p.id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Post not found
		}
		return nil, err
	}
	return row.toPost(), nil
}

// ListPosts returns posts newest first with offset/limit pagination.
func (r *postRepository) ListPosts(offset, limit int) ([]*models.Post, error) {
	var rows []postRow
	err := r.db.Select(&rows, postSelect+` ORDER BY p.created_at DESC OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
	}
	return posts, nil
}

func (r *postRepository) UpdatePost(post *models.Post) error {
	query := `UPDATE posts SET title = $1, content = $2 WHERE id = $3`
	_, err := r.db.Exec(query, post.Title, post.Content, post.ID)
	return err
}

// DeletePost removes the post and its comments in one transaction. Comments
// go first so the foreign key stays satisfied.
func (r *postRepository) DeletePost(id int64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
