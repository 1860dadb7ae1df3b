package repository

import (
	"database/sql"
	"time"

	"blogapi/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	ListCommentsForPost(postID int64) ([]*models.Comment, error)
}

type commentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCommentRepository(db *sqlx.DB, logger *zap.Logger) CommentRepository {
	return &commentRepository{db: db, logger: logger}
}

type commentRow struct {
	ID             int64          `db:"id"`
	Content        string         `db:"content"`
	PostID         int64          `db:"post_id"`
	AuthorID       sql.NullInt64  `db:"author_id"`
	CreatedAt      time.Time      `db:"created_at"`
	AuthorUsername sql.NullString `db:"author_username"`
	AuthorEmail    sql.NullString `db:"author_email"`
}

func (r commentRow) toComment() *models.Comment {
	comment := &models.Comment{
		ID:        r.ID,
		Content:   r.Content,
		PostID:    r.PostID,
		CreatedAt: r.CreatedAt,
	}
	if r.AuthorID.Valid {
		authorID := r.AuthorID.Int64
		comment.AuthorID = &authorID
		comment.Author = &models.User{
			ID:       r.AuthorID.Int64,
			Username: r.AuthorUsername.String,
			Email:    r.AuthorEmail.String,
		}
	}
	return comment
}

func (r *commentRepository) CreateComment(comment *models.Comment) error {
	query := `INSERT INTO comments (content, post_id, author_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.db.QueryRowx(query, comment.Content, comment.PostID, comment.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt)
}

// ListCommentsForPost returns the post's comments oldest first.
func (r *commentRepository) ListCommentsForPost(postID int64) ([]*models.Comment, error) {
	var rows []commentRow
	query := `
		SELECT c.id, c.content, c.post_id, c.author_id, c.created_at,
		       u.username AS author_username, u.email AS author_email
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at`
	err := r.db.Select(&rows, query, postID)
	if err != nil {
		return nil, err
	}

	comments := make([]*models.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toComment())
	}
	return comments, nil
}
