package repository

import (
	"context"
	"testing"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsOnMissingKeys(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	credits, err := NewCreditRepository(kv).Get(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, StartingCredits, credits)

	posts, err := NewPostRepository(kv).List(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, posts)

	ideas, err := NewIdeaRepository(kv).List(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, ideas)

	connections, err := NewConnectionRepository(kv).List(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, connections)

	users, err := NewUserRepository(kv).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestConnectionToggle(t *testing.T) {
	ctx := context.Background()
	repo := NewConnectionRepository(storage.NewMemoryKV())

	connections, err := repo.Toggle(ctx, "u", "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, connections)

	connections, err = repo.Toggle(ctx, "u", "LinkedIn")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"X", "LinkedIn"}, connections)

	connections, err = repo.Toggle(ctx, "u", "X")
	require.NoError(t, err)
	assert.Equal(t, []string{"LinkedIn"}, connections)
}

func TestPostStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(storage.NewMemoryKV())

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	_, err := repo.Prepend(ctx, "u", models.Post{ID: "pub-due", Status: models.PostStatusScheduled, ScheduledTime: &past})
	require.NoError(t, err)
	_, err = repo.Prepend(ctx, "u", models.Post{ID: "pub-later", Status: models.PostStatusScheduled, ScheduledTime: &future})
	require.NoError(t, err)

	due, err := repo.ListScheduledBefore(ctx, "u", time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "pub-due", due[0].ID)

	require.NoError(t, repo.UpdateStatus(ctx, "u", "pub-due", models.PostStatusPosted))

	post, err := repo.GetByID(ctx, "u", "pub-due")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, models.PostStatusPosted, post.Status)

	due, err = repo.ListScheduledBefore(ctx, "u", time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestUserRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(storage.NewMemoryKV())

	require.NoError(t, repo.Create(ctx, models.User{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, repo.Create(ctx, models.User{ID: "u2", Email: "b@example.com"}))

	user, found, err := repo.GetByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "u2", user.ID)

	_, found, err = repo.GetByEmail(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	user, found, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a@example.com", user.Email)
}
