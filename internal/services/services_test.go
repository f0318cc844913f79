package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votecompare/internal/chart"
	"votecompare/internal/config"
	apperrors "votecompare/internal/errors"
	"votecompare/internal/infrastructure"
	"votecompare/internal/pipeline"
	"votecompare/pkg/contracts/domain"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func fixture() *pipeline.Dataset {
	return &pipeline.Dataset{
		ID:       uuid.New(),
		LoadedAt: time.Now(),
		Domain:   domain.NeighborhoodDomain{"X", "Y"},
		Candidates: []domain.Candidate{
			{Name: "A", Color: "green"},
			{Name: "B", Color: "blue"},
		},
		Records: []domain.VoteRecord{
			{Neighborhood: "X", Candidate: "A", VotesAbsolute: i64(1), VoteSharePercent: f64(25)},
			{Neighborhood: "Y", Candidate: "A", VotesAbsolute: i64(3), VoteSharePercent: f64(75)},
			{Neighborhood: "X", Candidate: "B", VotesAbsolute: i64(5), VoteSharePercent: f64(100)},
			{Neighborhood: "Y", Candidate: "B"},
		},
	}
}

func staticLoader(ds *pipeline.Dataset, err error) LoadFunc {
	return func(context.Context) (*pipeline.Dataset, error) { return ds, err }
}

func TestDatasetServiceBeforeLoad(t *testing.T) {
	svc := NewDatasetService(staticLoader(fixture(), nil), chart.Options{}, nil, quiet())

	_, err := svc.Current()
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = svc.Chart(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, ErrNoDataset)
	_, err = svc.Records(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestDatasetServiceReloadKeepsPreviousOnFailure(t *testing.T) {
	first := fixture()
	var fail bool
	load := func(context.Context) (*pipeline.Dataset, error) {
		if fail {
			return nil, errors.New("source broken")
		}
		return first, nil
	}
	svc := NewDatasetService(load, chart.Options{}, nil, quiet())

	ds, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, ds)

	fail = true
	_, err = svc.Reload(context.Background())
	require.Error(t, err)

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)
}

func TestDatasetServiceConcurrentReaders(t *testing.T) {
	svc := NewDatasetService(func(context.Context) (*pipeline.Dataset, error) { return fixture(), nil },
		chart.Options{}, infrastructure.NoopPipelineMetrics(), quiet())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			payload, err := svc.Chart(context.Background(), []string{"A", "B"})
			assert.NoError(t, err)
			assert.Equal(t, 4, payload.RowCount)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.Reload(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestDatasetServiceQueries(t *testing.T) {
	svc := NewDatasetService(staticLoader(fixture(), nil), chart.Options{Title: "T", MarkerScale: 2}, nil, quiet())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	candidates, err := svc.Candidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, candidates, 2)

	payload, err := svc.Chart(context.Background(), []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, "T", payload.Title)
	require.Len(t, payload.Series, 1)
	assert.Equal(t, 150.0, *payload.Series[0].MarkerSize[1])

	empty, err := svc.Chart(context.Background(), []string{})
	require.NoError(t, err)
	assert.Zero(t, empty.RowCount)

	records, err := svc.Records(context.Background(), []string{"B"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = svc.Records(context.Background(), []string{"A", "Nobody"})
	var unknown *UnknownCandidatesError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"Nobody"}, unknown.Names)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestDatasetServiceNilSelectionFollowsActiveDataset(t *testing.T) {
	renamed := fixture()
	renamed.Candidates = []domain.Candidate{{Name: "C", Color: "red"}}
	renamed.Records = []domain.VoteRecord{
		{Neighborhood: "X", Candidate: "C", VotesAbsolute: i64(2), VoteSharePercent: f64(50)},
		{Neighborhood: "Y", Candidate: "C", VotesAbsolute: i64(2), VoteSharePercent: f64(50)},
	}

	next := fixture()
	load := func(context.Context) (*pipeline.Dataset, error) { return next, nil }
	svc := NewDatasetService(load, chart.Options{}, nil, quiet())
	_, err := svc.Reload(context.Background())
	require.NoError(t, err)

	payload, err := svc.Chart(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, payload.Series, 2)

	// Candidate set changes on reload; a nil selection must not go stale.
	next = renamed
	_, err = svc.Reload(context.Background())
	require.NoError(t, err)

	payload, err = svc.Chart(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, payload.Series, 1)
	assert.Equal(t, "C", payload.Series[0].Candidate)

	records, err := svc.Records(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = svc.Chart(context.Background(), []string{"A"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestPipelineLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "a.csv"), []byte("bairro,Votos\nX,1\nY,1\n"), 0o644))

	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{{Name: "A", Path: "a.csv", VotesColumn: "Votos", Color: "red"}}
	paths, err := config.GetPaths(config.PathsConfig{BaseDir: dir, DataDir: "data", ReportsDir: "reports", LogsDir: "logs"})
	require.NoError(t, err)

	ds, err := PipelineLoader(cfg, paths, pipeline.WithLogger(quiet()))(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NeighborhoodDomain{"X", "Y"}, ds.Domain)
	assert.Len(t, ds.Records, 2)
}

func TestHealthCheck(t *testing.T) {
	datasets := NewDatasetService(staticLoader(fixture(), nil), chart.Options{}, nil, quiet())
	health := NewHealthService("1.2.3", datasets, quiet())

	status := health.HealthCheck(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Nil(t, status.Dataset)

	_, err := datasets.Reload(context.Background())
	require.NoError(t, err)

	status = health.HealthCheck(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	require.NotNil(t, status.Dataset)
	assert.Equal(t, 4, status.Dataset.Rows)
	assert.Equal(t, 2, status.Dataset.Neighborhoods)
}
