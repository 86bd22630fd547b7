package domain

import (
	"context"
	"strings"
	"time"
)

// User is an operator: someone who may sign in and manage customer
// records. Operators are provisioned by config or by another operator.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the stored and looked-up form of an operator email.
// Sign-in is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository stores operator accounts. Implementations normalize
// emails with NormalizeEmail on write and lookup.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
