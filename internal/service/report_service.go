package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/panaderia-reports/internal/cache"
	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/reports"
	"github.com/andresuchdata/panaderia-reports/internal/source"
	"github.com/rs/zerolog/log"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidKind    = errors.New("invalid report kind")
)

// ReportService serves queries from the current dataset. Reload swaps in a freshly built
// dataset; readers keep whichever snapshot they started with.
type ReportService struct {
	source     source.Source
	sourceName string
	cache      cache.ReportsCache
	opts       []reports.Option

	mu      sync.RWMutex
	dataset *reports.Dataset
	summary domain.LoadSummary
}

func NewReportService(src source.Source, sourceName string, cacheImpl cache.ReportsCache, opts ...reports.Option) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportsCache()
	}
	return &ReportService{
		source:     src,
		sourceName: sourceName,
		cache:      cacheImpl,
		opts:       opts,
		dataset:    reports.Build(domain.RawSet{}, opts...),
	}
}

// Reload reads the source again, rebuilds the dataset and clears cached views.
func (s *ReportService) Reload(ctx context.Context) (domain.LoadSummary, error) {
	raw, err := s.source.Load(ctx)
	if err != nil {
		return domain.LoadSummary{}, fmt.Errorf("load reports from %s: %w", s.sourceName, err)
	}

	dataset := reports.Build(raw, s.opts...)
	stats := dataset.Stats()
	summary := domain.LoadSummary{
		Source:            s.sourceName,
		RawRecords:        raw.Len(),
		UnifiedReports:    stats.TotalReports,
		InvalidReports:    stats.InvalidReports,
		DuplicatesRemoved: stats.DuplicatesRemoved,
		Years:             dataset.AvailableYears(),
		LoadedAt:          time.Now().UTC(),
	}

	s.mu.Lock()
	s.dataset = dataset
	s.summary = summary
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("reports: cache invalidate failed")
	}

	log.Info().
		Str("source", s.sourceName).
		Int("raw_records", summary.RawRecords).
		Int("unified_reports", summary.UnifiedReports).
		Int("duplicates_removed", summary.DuplicatesRemoved).
		Msg("Report dataset reloaded")
	return summary, nil
}

// Dataset returns the current snapshot.
func (s *ReportService) Dataset() *reports.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// LastLoad returns the summary of the last successful reload.
func (s *ReportService) LastLoad() domain.LoadSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *ReportService) Collections() domain.ReportCollections {
	return s.Dataset().Collections()
}

// Reports returns the unified collection, or the normalized per-kind array when kind is set.
func (s *ReportService) Reports(kind domain.ReportKind) ([]domain.Report, error) {
	if kind == "" {
		return s.Dataset().All(), nil
	}
	if _, ok := domain.ParseReportKind(string(kind)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return s.Dataset().Kind(kind), nil
}

func (s *ReportService) AvailableYears() []int {
	return s.Dataset().AvailableYears()
}

func (s *ReportService) ReportsForYear(year int, kind domain.ReportKind) []domain.Report {
	return s.Dataset().ReportsForYear(year, kind)
}

func (s *ReportService) ReportsForDateKey(dateKey string, kind domain.ReportKind) []domain.Report {
	return s.Dataset().ReportsForDateKey(dateKey, kind)
}

// ChartSeries, Stats and TopProducts read through the cache under the version of the
// dataset they compute from, so a reload racing with a Set cannot leave a stale entry behind.
func (s *ReportService) ChartSeries(ctx context.Context, year int, view domain.ChartView) []domain.ChartPoint {
	dataset := s.Dataset()
	version := dataset.Version()

	if series, ok, err := s.cache.GetChart(ctx, version, year, view); err == nil && ok {
		return series
	} else if err != nil {
		log.Warn().Err(err).Msg("reports: cache get chart failed")
	}

	series := dataset.ChartSeries(year, view)

	if err := s.cache.SetChart(ctx, version, year, view, series); err != nil {
		log.Warn().Err(err).Msg("reports: cache set chart failed")
	}
	return series
}

func (s *ReportService) Stats(ctx context.Context) domain.ReportStats {
	dataset := s.Dataset()
	version := dataset.Version()

	if stats, ok, err := s.cache.GetStats(ctx, version); err == nil && ok {
		return *stats
	} else if err != nil {
		log.Warn().Err(err).Msg("reports: cache get stats failed")
	}

	stats := dataset.Stats()

	if err := s.cache.SetStats(ctx, version, &stats); err != nil {
		log.Warn().Err(err).Msg("reports: cache set stats failed")
	}
	return stats
}

func (s *ReportService) Search(term string, kind domain.ReportKind) []domain.Report {
	return s.Dataset().Search(term, kind)
}

func (s *ReportService) Insight(id string) (domain.ReportInsight, error) {
	insight, ok := s.Dataset().Insight(id)
	if !ok {
		return domain.ReportInsight{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return insight, nil
}

func (s *ReportService) Find(id string) (domain.Report, error) {
	report, ok := s.Dataset().Find(id)
	if !ok {
		return domain.Report{}, fmt.Errorf("%w: %s", ErrReportNotFound, id)
	}
	return report, nil
}

func (s *ReportService) TopProducts(ctx context.Context, mode domain.TopProductMode, period string) []domain.TopProduct {
	dataset := s.Dataset()
	version := dataset.Version()

	if products, ok, err := s.cache.GetTopProducts(ctx, version, mode, period); err == nil && ok {
		return products
	} else if err != nil {
		log.Warn().Err(err).Msg("reports: cache get top products failed")
	}

	products := dataset.TopProducts(mode, period, reports.DefaultTopProducts)

	if err := s.cache.SetTopProducts(ctx, version, mode, period, products); err != nil {
		log.Warn().Err(err).Msg("reports: cache set top products failed")
	}
	return products
}

func (s *ReportService) Collisions() []domain.IDCollision {
	return s.Dataset().Collisions()
}
