package service

import (
	"context"
	"fmt"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/repository"
	"github.com/rs/zerolog/log"
)

// SnapshotService reloads the dataset and mirrors the unified collection into the repository.
type SnapshotService struct {
	reports *ReportService
	repo    repository.ReportRepository
}

func NewSnapshotService(reports *ReportService, repo repository.ReportRepository) *SnapshotService {
	return &SnapshotService{reports: reports, repo: repo}
}

func (s *SnapshotService) Sync(ctx context.Context) (domain.SyncResult, error) {
	summary, err := s.reports.Reload(ctx)
	if err != nil {
		return domain.SyncResult{}, err
	}

	saved, err := s.repo.SaveSnapshot(ctx, s.reports.Dataset().All())
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("save snapshot: %w", err)
	}

	log.Info().Int("saved", saved).Str("source", summary.Source).Msg("Report snapshot synced")
	return domain.SyncResult{Load: summary, Saved: saved}, nil
}

// Stored returns the last synced snapshot, limited to kind when set.
func (s *SnapshotService) Stored(ctx context.Context, kind domain.ReportKind) ([]domain.Report, error) {
	if kind != "" {
		if _, ok := domain.ParseReportKind(string(kind)); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
		}
	}

	stored, err := s.repo.ListSnapshot(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list snapshot: %w", err)
	}
	if stored == nil {
		stored = []domain.Report{}
	}
	return stored, nil
}
