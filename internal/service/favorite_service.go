package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/reports"
	"github.com/andresuchdata/panaderia-reports/internal/repository"
)

type FavoriteService struct {
	repo          repository.FavoriteRepository
	reportService *ReportService
}

func NewFavoriteService(repo repository.FavoriteRepository, reportService *ReportService) *FavoriteService {
	if repo == nil {
		repo = repository.NewMemoryFavoriteRepository()
	}
	return &FavoriteService{repo: repo, reportService: reportService}
}

func (s *FavoriteService) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.repo.ListFavorites(ctx)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

func (s *FavoriteService) keySet(ctx context.Context) (map[string]struct{}, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, nil
}

// Reports returns the favorite reports still present in the unified collection, newest first.
func (s *FavoriteService) Reports(ctx context.Context) ([]domain.Report, error) {
	set, err := s.keySet(ctx)
	if err != nil {
		return nil, err
	}
	return s.reportService.Dataset().FavoriteReports(set), nil
}

// Annotate returns a copy of list with IsFavorite set on every favorite report.
func (s *FavoriteService) Annotate(ctx context.Context, list []domain.Report) ([]domain.Report, error) {
	set, err := s.keySet(ctx)
	if err != nil {
		return nil, err
	}
	return reports.MarkFavorites(list, set), nil
}

// AnnotateCollections marks favorites in every collection.
func (s *FavoriteService) AnnotateCollections(ctx context.Context, c domain.ReportCollections) (domain.ReportCollections, error) {
	set, err := s.keySet(ctx)
	if err != nil {
		return domain.ReportCollections{}, err
	}
	return domain.ReportCollections{
		Daily:    reports.MarkFavorites(c.Daily, set),
		Monthly:  reports.MarkFavorites(c.Monthly, set),
		Material: reports.MarkFavorites(c.Material, set),
		All:      reports.MarkFavorites(c.All, set),
	}, nil
}

func (s *FavoriteService) Toggle(ctx context.Context, id string, kindLabel string) (domain.FavoriteToggle, error) {
	kind, ok := domain.ParseReportKind(kindLabel)
	if !ok {
		return domain.FavoriteToggle{}, fmt.Errorf("%w: %q", ErrInvalidKind, kindLabel)
	}

	report, err := s.reportService.Find(id)
	if err != nil {
		return domain.FavoriteToggle{}, err
	}
	if report.Kind != kind {
		return domain.FavoriteToggle{}, fmt.Errorf("%w: %s", ErrReportNotFound, domain.FavoriteKey(id, kind))
	}

	key := report.FavoriteKey()
	favorite, err := s.repo.ToggleFavorite(ctx, key)
	if err != nil {
		return domain.FavoriteToggle{}, fmt.Errorf("toggle favorite %s: %w", key, err)
	}
	return domain.FavoriteToggle{Key: key, IsFavorite: favorite}, nil
}
