package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reportsKeyPrefix   = "reports:"
	reportsScanBatches = 100
)

// ReportsCache stores derived report views. Every entry is keyed by the version of the
// dataset it was computed from, so a view computed before a reload is never served after it.
// Entries are also dropped wholesale whenever the dataset is reloaded.
type ReportsCache interface {
	GetChart(ctx context.Context, version string, year int, view domain.ChartView) ([]domain.ChartPoint, bool, error)
	SetChart(ctx context.Context, version string, year int, view domain.ChartView, series []domain.ChartPoint) error
	GetStats(ctx context.Context, version string) (*domain.ReportStats, bool, error)
	SetStats(ctx context.Context, version string, stats *domain.ReportStats) error
	GetTopProducts(ctx context.Context, version string, mode domain.TopProductMode, period string) ([]domain.TopProduct, bool, error)
	SetTopProducts(ctx context.Context, version string, mode domain.TopProductMode, period string, products []domain.TopProduct) error
	InvalidateAll(ctx context.Context) error
}

type redisReportsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportsCache struct{}

func NewReportsCache(cfg config.CacheConfig) (ReportsCache, error) {
	if !cfg.Enabled {
		return &noopReportsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportsCache() ReportsCache {
	return &noopReportsCache{}
}

func (c *redisReportsCache) GetChart(ctx context.Context, version string, year int, view domain.ChartView) ([]domain.ChartPoint, bool, error) {
	return getJSON[[]domain.ChartPoint](ctx, c.client, buildChartKey(version, year, view))
}

func (c *redisReportsCache) SetChart(ctx context.Context, version string, year int, view domain.ChartView, series []domain.ChartPoint) error {
	return setJSON(ctx, c.client, buildChartKey(version, year, view), series, c.ttl)
}

func (c *redisReportsCache) GetStats(ctx context.Context, version string) (*domain.ReportStats, bool, error) {
	stats, ok, err := getJSON[domain.ReportStats](ctx, c.client, buildStatsKey(version))
	if err != nil || !ok {
		return nil, ok, err
	}
	return &stats, true, nil
}

func (c *redisReportsCache) SetStats(ctx context.Context, version string, stats *domain.ReportStats) error {
	return setJSON(ctx, c.client, buildStatsKey(version), stats, c.ttl)
}

func (c *redisReportsCache) GetTopProducts(ctx context.Context, version string, mode domain.TopProductMode, period string) ([]domain.TopProduct, bool, error) {
	return getJSON[[]domain.TopProduct](ctx, c.client, buildTopProductsKey(version, mode, period))
}

func (c *redisReportsCache) SetTopProducts(ctx context.Context, version string, mode domain.TopProductMode, period string, products []domain.TopProduct) error {
	return setJSON(ctx, c.client, buildTopProductsKey(version, mode, period), products, c.ttl)
}

func (c *redisReportsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportsKeyPrefix, reportsScanBatches)
}

func (n *noopReportsCache) GetChart(ctx context.Context, version string, year int, view domain.ChartView) ([]domain.ChartPoint, bool, error) {
	return nil, false, nil
}

func (n *noopReportsCache) SetChart(ctx context.Context, version string, year int, view domain.ChartView, series []domain.ChartPoint) error {
	return nil
}

func (n *noopReportsCache) GetStats(ctx context.Context, version string) (*domain.ReportStats, bool, error) {
	return nil, false, nil
}

func (n *noopReportsCache) SetStats(ctx context.Context, version string, stats *domain.ReportStats) error {
	return nil
}

func (n *noopReportsCache) GetTopProducts(ctx context.Context, version string, mode domain.TopProductMode, period string) ([]domain.TopProduct, bool, error) {
	return nil, false, nil
}

func (n *noopReportsCache) SetTopProducts(ctx context.Context, version string, mode domain.TopProductMode, period string, products []domain.TopProduct) error {
	return nil
}

func (n *noopReportsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func versionPrefix(version string) string {
	if version == "" {
		version = "unversioned"
	}
	return reportsKeyPrefix + version + ":"
}

func buildChartKey(version string, year int, view domain.ChartView) string {
	return fmt.Sprintf("%schart:%d:%s", versionPrefix(version), year, view)
}

func buildStatsKey(version string) string {
	return versionPrefix(version) + "stats"
}

func buildTopProductsKey(version string, mode domain.TopProductMode, period string) string {
	prefix := versionPrefix(version) + "top_products"
	period = strings.TrimSpace(period)
	if period == "" {
		return fmt.Sprintf("%s:%s:latest", prefix, mode)
	}

	raw := strings.Join([]string{"mode=" + string(mode), "period=" + period}, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}
