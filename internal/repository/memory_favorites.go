package repository

import (
	"context"
	"sync"
)

type memoryFavoriteRepository struct {
	mu   sync.Mutex
	keys []string
}

// NewMemoryFavoriteRepository keeps favorites in process memory. It is used when no database
// is configured.
func NewMemoryFavoriteRepository() FavoriteRepository {
	return &memoryFavoriteRepository{}
}

func (r *memoryFavoriteRepository) ListFavorites(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.keys...), nil
}

func (r *memoryFavoriteRepository) ToggleFavorite(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			return false, nil
		}
	}
	r.keys = append(r.keys, key)
	return true, nil
}
