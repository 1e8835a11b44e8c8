package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/repository"
)

// ConnectionService manages the locally flagged publish targets. No real
// platform credential is involved.
type ConnectionService interface {
	List(ctx context.Context, userID string) ([]string, error)
	Toggle(ctx context.Context, userID, platformID string) ([]string, error)
}

type connectionService struct {
	cr repository.ConnectionRepository
}

func NewConnectionService(cr repository.ConnectionRepository) ConnectionService {
	return &connectionService{cr: cr}
}

func (s *connectionService) List(ctx context.Context, userID string) ([]string, error) {
	return s.cr.List(ctx, userID)
}

func (s *connectionService) Toggle(ctx context.Context, userID, platformID string) ([]string, error) {
	if !models.IsKnownPlatform(platformID) {
		err := errors.New("unknown platform")
		slog.Info(err.Error(), "platform", platformID)
		return nil, err
	}
	return s.cr.Toggle(ctx, userID, platformID)
}
