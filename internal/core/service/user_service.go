package service

import (
	"context"

	"github.com/quotable/quotes-api/internal/core/domain"
	"github.com/quotable/quotes-api/internal/core/ports"
)

// UserService resolves the account behind an authenticated actor.
type UserService struct {
	repo ports.AuthRepository
}

func NewUserService(repo ports.AuthRepository) *UserService {
	return &UserService{repo: repo}
}

// Current returns the account for the actor. Anonymous actors have none.
func (s *UserService) Current(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if actor.IsAnonymous() {
		return nil, domain.ErrInvalidCredentials
	}
	return s.repo.FindByID(ctx, actor.ID)
}
