package ports

import (
	"context"

	"github.com/quotable/quotes-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByIdentifier looks a user up by username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
