package domain

import (
	"errors"
	"time"
)

// Role is the access level assigned to a user at creation. It is immutable
// afterwards.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User models a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        *string   `json:"email,omitempty"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
