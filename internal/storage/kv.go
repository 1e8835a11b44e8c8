package storage

import "context"

// KV is the flat key-value contract every persisted partition sits on.
// Missing keys are not errors; the second return reports presence and the
// repositories supply partition defaults. Writes are last-write-wins.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
