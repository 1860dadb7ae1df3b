package models

import "time"

type Post struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	AuthorID  int64     `db:"author_id" json:"-"`
	Author    *User     `db:"-" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
