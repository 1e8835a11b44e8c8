package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/storage"
)

type PostRepository interface {
	List(ctx context.Context, userID string) ([]models.Post, error)
	Prepend(ctx context.Context, userID string, post models.Post) ([]models.Post, error)
	GetByID(ctx context.Context, userID, postID string) (*models.Post, error)
	UpdateStatus(ctx context.Context, userID, postID, status string) error
	ListScheduledBefore(ctx context.Context, userID string, cutoff time.Time) ([]models.Post, error)
}

type postRepository struct {
	kv storage.KV
}

func NewPostRepository(kv storage.KV) PostRepository {
	return &postRepository{kv: kv}
}

func (r *postRepository) List(ctx context.Context, userID string) ([]models.Post, error) {
	val, ok, err := r.kv.Get(ctx, postsKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Post{}, nil
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(val), &posts); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) save(ctx context.Context, userID string, posts []models.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return r.kv.Set(ctx, postsKey(userID), string(data))
}

// Prepend keeps history most-recent-first and returns the updated sequence.
func (r *postRepository) Prepend(ctx context.Context, userID string, post models.Post) ([]models.Post, error) {
	posts, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := append([]models.Post{post}, posts...)
	if err := r.save(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postRepository) GetByID(ctx context.Context, userID, postID string) (*models.Post, error) {
	posts, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == postID {
			return &posts[i], nil
		}
	}
	return nil, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, userID, postID, status string) error {
	posts, err := r.List(ctx, userID)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == postID {
			posts[i].Status = status
		}
	}
	return r.save(ctx, userID, posts)
}

func (r *postRepository) ListScheduledBefore(ctx context.Context, userID string, cutoff time.Time) ([]models.Post, error) {
	posts, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	var due []models.Post
	for _, p := range posts {
		if p.Status == models.PostStatusScheduled && p.ScheduledTime != nil && p.ScheduledTime.Before(cutoff) {
			due = append(due, p)
		}
	}
	return due, nil
}
