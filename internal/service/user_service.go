package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{u: u}
}

func (s *userService) GetUserInfo(ctx context.Context, userID string) (*models.User, error) {
	user, exists, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = errors.New("user doesn't exist")
		slog.Info(err.Error(), "user_id", userID)
		return nil, err
	}
	return user, nil
}
