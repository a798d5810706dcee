package ports

import (
	"context"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// RegisterInput carries the payload for account registration.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type AuthService interface {
	// Register creates a regular-user account. The role is never caller
	// supplied.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login verifies the password and returns a signed bearer credential
	// carrying the user's id and role.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
