package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"articleboard/internal/logger"
	"articleboard/internal/models"
	"articleboard/internal/repository"
)

// UserLookupService backs the /judge JSON endpoint.
type UserLookupService struct {
	repo UserRepo
}

func NewUserLookupService(repo UserRepo) *UserLookupService {
	return &UserLookupService{repo: repo}
}

// FindByEmail never returns an error to the caller: an unknown address yields
// a zero-value placeholder user, so the endpoint does not leak whether the
// address exists. Infrastructure failures are logged and also produce the
// placeholder.
func (s *UserLookupService) FindByEmail(ctx context.Context, email string) *models.User {
	log := logger.WithCtx(ctx)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user lookup failed (repo)", zap.Error(err))
		}
		return &models.User{}
	}
	return user
}
