package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRepo struct {
	saved []domain.Report
	err   error
}

func (r *recordingRepo) SaveSnapshot(ctx context.Context, reports []domain.Report) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.saved = reports
	return len(reports), nil
}

func (r *recordingRepo) ListSnapshot(ctx context.Context, kind domain.ReportKind) ([]domain.Report, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Report
	for _, report := range r.saved {
		if kind == "" || report.Kind == kind {
			out = append(out, report)
		}
	}
	return out, nil
}

func TestSnapshotService_Sync(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewSnapshotService(newService(t, &staticSource{raw: sampleRaw()}, nil), repo)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, result.Saved)
	assert.Equal(t, 5, result.Load.UnifiedReports)
	require.Len(t, repo.saved, 5)
	for _, r := range repo.saved {
		assert.True(t, r.IsValid)
	}
}

func TestSnapshotService_SyncErrors(t *testing.T) {
	src := &staticSource{raw: sampleRaw()}
	repo := &recordingRepo{err: errors.New("db down")}
	svc := NewSnapshotService(newService(t, src, nil), repo)

	_, err := svc.Sync(context.Background())
	assert.ErrorContains(t, err, "save snapshot")

	src.err = errors.New("no source")
	_, err = svc.Sync(context.Background())
	assert.ErrorContains(t, err, "no source")
}

func TestSnapshotService_Stored(t *testing.T) {
	ctx := context.Background()
	repo := &recordingRepo{}
	svc := NewSnapshotService(newService(t, &staticSource{raw: sampleRaw()}, nil), repo)

	empty, err := svc.Stored(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.Sync(ctx)
	require.NoError(t, err)

	all, err := svc.Stored(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	monthly, err := svc.Stored(ctx, domain.KindMonthly)
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, domain.KindMonthly, monthly[0].Kind)

	_, err = svc.Stored(ctx, "weekly")
	assert.ErrorIs(t, err, ErrInvalidKind)

	repo.err = errors.New("db down")
	_, err = svc.Stored(ctx, "")
	assert.ErrorContains(t, err, "list snapshot")
}
