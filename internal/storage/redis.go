package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) KV {
	return &redisKV{client: client}
}

func (s *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		slog.Info(err.Error())
		return "", false, err
	}
	return val, true, nil
}

func (s *redisKV) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (s *redisKV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
