package app

import (
	"context"
	"testing"

	"github.com/andresuchdata/panaderia-reports/internal/config"
	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/andresuchdata/panaderia-reports/internal/reports"
	"github.com/andresuchdata/panaderia-reports/internal/source"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	ctx := context.Background()

	src, label, err := NewSource(ctx, &config.Config{App: config.AppConfig{Source: "file", DataDir: "/tmp/reports"}})
	require.NoError(t, err)
	assert.IsType(t, &source.FileSource{}, src)
	assert.Equal(t, "file:/tmp/reports", label)

	src, label, err = NewSource(ctx, &config.Config{
		App: config.AppConfig{Source: "S3"},
		Storage: config.StorageConfig{
			Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "panaderia", Prefix: "reports/",
		},
	})
	require.NoError(t, err)
	assert.IsType(t, &source.ObjectSource{}, src)
	assert.Equal(t, "s3:panaderia/reports/", label)

	_, _, err = NewSource(ctx, &config.Config{App: config.AppConfig{Source: "drive"}})
	assert.ErrorContains(t, err, "GOOGLE_DRIVE_CREDENTIALS_JSON")

	_, _, err = NewSource(ctx, &config.Config{App: config.AppConfig{Source: "ftp"}})
	assert.Error(t, err)
}

func TestNewSource_BundledReports(t *testing.T) {
	ctx := context.Background()

	src, label, err := NewSource(ctx, &config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "bundled", label)

	raw, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, raw.Daily, 30)
	assert.Len(t, raw.Monthly, 5)
	assert.Len(t, raw.Material, 5)
	assert.Equal(t, "reporte-diario-2025-06-01", raw.Daily[0].ID.String())
	assert.Equal(t, "reporte-diario-2025-07-01", raw.Daily[6].ID.String())
	assert.Equal(t, "reporte-mensual-2025-06", raw.Monthly[0].ID.String())
	assert.Equal(t, "reporte-mensual-2026-02", raw.Monthly[4].ID.String())

	d := reports.Build(raw, reports.WithLogger(zerolog.Nop()))
	assert.Len(t, d.All(), 40)
	assert.Empty(t, d.Collisions())
	assert.Equal(t, []int{2026, 2025}, d.AvailableYears())
	assert.Len(t, d.ChartSeries(2025, domain.ChartViewSales), 3)
}
