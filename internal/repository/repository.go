package repository

import (
	"context"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
)

// ReportRepository persists the unified collection so other tools can query it with SQL.
type ReportRepository interface {
	// SaveSnapshot replaces the stored snapshot with reports and returns the number of rows written.
	SaveSnapshot(ctx context.Context, reports []domain.Report) (int, error)
	// ListSnapshot returns the stored reports in unified order, limited to kind when set.
	ListSnapshot(ctx context.Context, kind domain.ReportKind) ([]domain.Report, error)
}

// FavoriteRepository stores favorite keys of the form "<id>-<kind>".
type FavoriteRepository interface {
	ListFavorites(ctx context.Context) ([]string, error)
	// ToggleFavorite flips the key and reports whether it is now a favorite.
	ToggleFavorite(ctx context.Context, key string) (bool, error)
}
