package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"carepulse/internal/domain"
	"carepulse/internal/repository"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// CreateUser stores a new user. A taken email comes back as domain.ErrConflict.
func (s *UserServiceImpl) CreateUser(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	params.Email = strings.TrimSpace(params.Email)

	user, err := s.repo.Create(ctx, params)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Info("user already exists", zap.String("email", params.Email))
		} else {
			s.logger.Error("failed to create user", zap.Error(err))
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", zap.String("userId", user.ID))
	return user, nil
}

func (s *UserServiceImpl) FindUsersByEmail(ctx context.Context, email string) ([]domain.User, error) {
	users, err := s.repo.ListByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.logger.Error("failed to look up users by email", zap.Error(err))
		return nil, fmt.Errorf("find users by email: %w", err)
	}
	return users, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to get user", zap.String("userId", id), zap.Error(err))
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
