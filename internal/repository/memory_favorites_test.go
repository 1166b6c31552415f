package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFavoriteRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFavoriteRepository()

	on, err := repo.ToggleFavorite(ctx, "2025-06-monthly")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = repo.ToggleFavorite(ctx, "1-daily")
	require.NoError(t, err)
	assert.True(t, on)

	keys, err := repo.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-monthly", "1-daily"}, keys)

	on, err = repo.ToggleFavorite(ctx, "2025-06-monthly")
	require.NoError(t, err)
	assert.False(t, on)

	keys, err = repo.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1-daily"}, keys)
}

func TestMemoryFavoriteRepository_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFavoriteRepository()
	_, _ = repo.ToggleFavorite(ctx, "a-daily")

	keys, _ := repo.ListFavorites(ctx)
	keys[0] = "changed"

	again, _ := repo.ListFavorites(ctx)
	assert.Equal(t, []string{"a-daily"}, again)
}
