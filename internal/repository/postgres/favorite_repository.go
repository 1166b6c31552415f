package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

type favoriteRepository struct {
	db *DB
}

func NewFavoriteRepository(db *DB) *favoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) ListFavorites(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.SelectContext(ctx, &keys, `SELECT key FROM report_favorites ORDER BY created_at, key`); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return keys, nil
}

func (r *favoriteRepository) ToggleFavorite(ctx context.Context, key string) (bool, error) {
	var favorite bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM report_favorites WHERE key = $1`, key)
		if err != nil {
			return fmt.Errorf("failed to remove favorite: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if removed > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO report_favorites (key) VALUES ($1)`, key); err != nil {
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		favorite = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return favorite, nil
}
