package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/storage"
)

type IdeaRepository interface {
	List(ctx context.Context, userID string) ([]models.SavedIdea, error)
	Save(ctx context.Context, userID string, idea models.SavedIdea) ([]models.SavedIdea, error)
	Delete(ctx context.Context, userID, ideaID string) ([]models.SavedIdea, error)
	GetByID(ctx context.Context, userID, ideaID string) (*models.SavedIdea, error)
}

type ideaRepository struct {
	kv storage.KV
}

func NewIdeaRepository(kv storage.KV) IdeaRepository {
	return &ideaRepository{kv: kv}
}

func (r *ideaRepository) List(ctx context.Context, userID string) ([]models.SavedIdea, error) {
	val, ok, err := r.kv.Get(ctx, ideasKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.SavedIdea{}, nil
	}

	var ideas []models.SavedIdea
	if err := json.Unmarshal([]byte(val), &ideas); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepository) save(ctx context.Context, userID string, ideas []models.SavedIdea) error {
	data, err := json.Marshal(ideas)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return r.kv.Set(ctx, ideasKey(userID), string(data))
}

// Save prepends the idea unless one with the same id already exists, in which
// case the library is returned unmodified.
func (r *ideaRepository) Save(ctx context.Context, userID string, idea models.SavedIdea) ([]models.SavedIdea, error) {
	ideas, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range ideas {
		if existing.ID == idea.ID {
			slog.Info("attempted to save duplicate idea", "idea_id", idea.ID)
			return ideas, nil
		}
	}

	updated := append([]models.SavedIdea{idea}, ideas...)
	if err := r.save(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ideaRepository) Delete(ctx context.Context, userID, ideaID string) ([]models.SavedIdea, error) {
	ideas, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := make([]models.SavedIdea, 0, len(ideas))
	for _, idea := range ideas {
		if idea.ID != ideaID {
			updated = append(updated, idea)
		}
	}

	if err := r.save(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ideaRepository) GetByID(ctx context.Context, userID, ideaID string) (*models.SavedIdea, error) {
	ideas, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range ideas {
		if ideas[i].ID == ideaID {
			return &ideas[i], nil
		}
	}
	return nil, nil
}
