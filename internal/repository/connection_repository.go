package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/socialflow/internal/storage"
)

type ConnectionRepository interface {
	List(ctx context.Context, userID string) ([]string, error)
	Toggle(ctx context.Context, userID, platformID string) ([]string, error)
}

type connectionRepository struct {
	kv storage.KV
}

func NewConnectionRepository(kv storage.KV) ConnectionRepository {
	return &connectionRepository{kv: kv}
}

func (r *connectionRepository) List(ctx context.Context, userID string) ([]string, error) {
	val, ok, err := r.kv.Get(ctx, connectionsKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var connections []string
	if err := json.Unmarshal([]byte(val), &connections); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return connections, nil
}

// Toggle flips the connected flag for a platform and returns the updated set.
func (r *connectionRepository) Toggle(ctx context.Context, userID, platformID string) ([]string, error) {
	connections, err := r.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := make([]string, 0, len(connections)+1)
	found := false
	for _, id := range connections {
		if id == platformID {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if !found {
		updated = append(updated, platformID)
	}

	data, err := json.Marshal(updated)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	if err := r.kv.Set(ctx, connectionsKey(userID), string(data)); err != nil {
		return nil, err
	}
	return updated, nil
}
