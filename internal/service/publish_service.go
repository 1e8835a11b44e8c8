package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrIdeaNotFound = errors.New("idea doesn't exist")

// PublishService is the sink turning finished candidates into persisted
// posts and saved ideas.
type PublishService interface {
	Publish(ctx context.Context, userID string, post models.Post) ([]models.Post, error)
	History(ctx context.Context, userID string) ([]models.Post, error)
	SaveIdea(ctx context.Context, userID string, idea models.SavedIdea) ([]models.SavedIdea, error)
	DeleteIdea(ctx context.Context, userID, ideaID string) ([]models.SavedIdea, error)
	Ideas(ctx context.Context, userID string) ([]models.SavedIdea, error)
	PublishIdea(ctx context.Context, userID, ideaID string, platforms []string) (*models.Post, error)
}

type publishService struct {
	pr repository.PostRepository
	ir repository.IdeaRepository
}

func NewPublishService(pr repository.PostRepository, ir repository.IdeaRepository) PublishService {
	return &publishService{pr: pr, ir: ir}
}

func (s *publishService) Publish(ctx context.Context, userID string, post models.Post) ([]models.Post, error) {
	posts, err := s.pr.Prepend(ctx, userID, post)
	if err != nil {
		return nil, fmt.Errorf("error saving post: %w", err)
	}
	return posts, nil
}

func (s *publishService) History(ctx context.Context, userID string) ([]models.Post, error) {
	posts, err := s.pr.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *publishService) SaveIdea(ctx context.Context, userID string, idea models.SavedIdea) ([]models.SavedIdea, error) {
	ideas, err := s.ir.Save(ctx, userID, idea)
	if err != nil {
		return nil, fmt.Errorf("error saving idea: %w", err)
	}
	return ideas, nil
}

func (s *publishService) DeleteIdea(ctx context.Context, userID, ideaID string) ([]models.SavedIdea, error) {
	ideas, err := s.ir.Delete(ctx, userID, ideaID)
	if err != nil {
		return nil, fmt.Errorf("error removing idea: %w", err)
	}
	return ideas, nil
}

func (s *publishService) Ideas(ctx context.Context, userID string) ([]models.SavedIdea, error) {
	ideas, err := s.ir.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing ideas: %w", err)
	}
	return ideas, nil
}

// PublishIdea posts a saved idea immediately, leaving the library entry in
// place.
func (s *publishService) PublishIdea(ctx context.Context, userID, ideaID string, platforms []string) (*models.Post, error) {
	idea, err := s.ir.GetByID(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		slog.Info("publish requested for unknown idea", "idea_id", ideaID)
		return nil, ErrIdeaNotFound
	}
	if len(platforms) == 0 {
		return nil, errors.New("no platforms chosen")
	}

	suffix, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	post := models.Post{
		ID:           "pub-" + suffix,
		Caption:      idea.Caption,
		ImageURL:     idea.ImageURL,
		Status:       models.PostStatusPosted,
		Platforms:    platforms,
		CreatedAt:    time.Now().UTC(),
		BusinessInfo: idea.BusinessInfo,
	}

	if _, err := s.pr.Prepend(ctx, userID, post); err != nil {
		return nil, fmt.Errorf("error saving post: %w", err)
	}
	return &post, nil
}
