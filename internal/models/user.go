package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is a named permission tier. Users reference at most one role.
type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         *Role     `db:"-" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// HasRole reports whether the user has been assigned the named role.
// A user without a role matches nothing.
func (u *User) HasRole(name string) bool {
	return u != nil && u.Role != nil && u.Role.Name == name
}

// Claims defines the structure of the JWT claims. The subject is the
// username of the authenticated user.
type Claims struct {
	jwt.RegisteredClaims
}
