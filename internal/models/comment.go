package models

import "time"

// Comment belongs to exactly one post. The author is optional so anonymous
// comments remain representable.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  *int64    `db:"author_id" json:"-"`
	Author    *User     `db:"-" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
