package cache

import (
	"context"
	"testing"

	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChartKey(t *testing.T) {
	assert.Equal(t, "reports:v1:chart:2025:sales", buildChartKey("v1", 2025, domain.ChartViewSales))
	assert.Equal(t, "reports:v1:chart:2024:rawMaterial", buildChartKey("v1", 2024, domain.ChartViewRawMaterial))
	assert.NotEqual(t, buildChartKey("v1", 2025, domain.ChartViewSales), buildChartKey("v2", 2025, domain.ChartViewSales))
	assert.Equal(t, "reports:unversioned:chart:2025:sales", buildChartKey("", 2025, domain.ChartViewSales))
}

func TestBuildStatsKey(t *testing.T) {
	assert.Equal(t, "reports:abc123:stats", buildStatsKey("abc123"))
}

func TestBuildTopProductsKey(t *testing.T) {
	assert.Equal(t, "reports:v1:top_products:month:latest", buildTopProductsKey("v1", domain.TopProductsByMonth, "  "))

	a := buildTopProductsKey("v1", domain.TopProductsByMonth, "2025-07")
	b := buildTopProductsKey("v1", domain.TopProductsByMonth, " 2025-07 ")
	c := buildTopProductsKey("v1", domain.TopProductsByYear, "2025-07")
	d := buildTopProductsKey("v2", domain.TopProductsByMonth, "2025-07")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Regexp(t, `^reports:v1:top_products:[0-9a-f]{40}$`, a)
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	opts, err = buildRedisOptions(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@redis.internal:6379/1"})
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 1, opts.DB)

	_, err = buildRedisOptions(config.CacheConfig{RedisURL: "://bad"})
	assert.Error(t, err)
}

func TestNewReportsCache_DisabledIsNoop(t *testing.T) {
	c, err := NewReportsCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.SetChart(ctx, "v1", 2025, domain.ChartViewSales, []domain.ChartPoint{{MonthLabel: "Jun"}}))
	series, ok, err := c.GetChart(ctx, "v1", 2025, domain.ChartViewSales)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, series)

	stats, ok, err := c.GetStats(ctx, "v1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, stats)

	assert.NoError(t, c.InvalidateAll(ctx))
}
