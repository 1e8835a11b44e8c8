package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/storage"
)

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, bool, error)
	GetByID(ctx context.Context, id string) (*models.User, bool, error)
}

type userRepository struct {
	kv storage.KV
}

func NewUserRepository(kv storage.KV) UserRepository {
	return &userRepository{kv: kv}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	val, ok, err := r.kv.Get(ctx, usersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal([]byte(val), &users); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user models.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	users = append(users, user)
	data, err := json.Marshal(users)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return r.kv.Set(ctx, usersKey, string(data))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], true, nil
		}
	}
	return nil, false, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, bool, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], true, nil
		}
	}
	return nil, false, nil
}
