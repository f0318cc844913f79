package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"votecompare/internal/chart"
	"votecompare/internal/config"
	apperrors "votecompare/internal/errors"
	"votecompare/internal/infrastructure"
	"votecompare/internal/pipeline"
	"votecompare/pkg/contracts/domain"
)

// ErrNoDataset is returned before the first successful load
var ErrNoDataset = errors.New("no dataset loaded")

// LoadFunc builds a fresh dataset
type LoadFunc func(ctx context.Context) (*pipeline.Dataset, error)

// PipelineLoader returns a LoadFunc that runs the pipeline over the
// configured sources
func PipelineLoader(cfg *config.Config, paths *config.Paths, opts ...pipeline.Option) LoadFunc {
	base := []pipeline.Option{
		pipeline.WithPaths(paths),
		pipeline.WithNeighborhoodAliases(cfg.Chart.NeighborhoodAliases),
	}
	opts = append(base, opts...)
	return func(ctx context.Context) (*pipeline.Dataset, error) {
		return pipeline.Load(ctx, cfg.Sources, opts...)
	}
}

// DatasetService owns the active dataset. Readers get the dataset that was
// current when they asked; Reload swaps in a new one only after it loaded
// completely, so a failed reload leaves the previous dataset in place.
type DatasetService struct {
	load    LoadFunc
	chart   chart.Options
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger

	current  atomic.Pointer[pipeline.Dataset]
	reloadMu sync.Mutex
}

// NewDatasetService creates a dataset service. Call Reload to load the
// first dataset.
func NewDatasetService(load LoadFunc, chartOpts chart.Options, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		load:    load,
		chart:   chartOpts,
		metrics: metrics,
		logger:  logger,
	}
}

// Current returns the active dataset
func (s *DatasetService) Current() (*pipeline.Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, ErrNoDataset
	}
	return ds, nil
}

// Reload rebuilds the dataset from its sources and makes it active.
// Concurrent reloads are serialized.
func (s *DatasetService) Reload(ctx context.Context) (*pipeline.Dataset, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ds, err := s.load(ctx)
	if err != nil {
		if prev := s.current.Load(); prev != nil {
			s.logger.WarnContext(ctx, "Dataset reload failed, keeping previous dataset",
				slog.String("dataset_id", prev.ID.String()),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.current.Store(ds)
	return ds, nil
}

// Candidates returns the configured candidates of the active dataset
func (s *DatasetService) Candidates(ctx context.Context) ([]domain.Candidate, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, err
	}
	return ds.Candidates, nil
}

// Chart builds the chart payload for the selected candidates. A nil
// selection means every candidate of the active dataset.
func (s *DatasetService) Chart(ctx context.Context, selected []string) (domain.ChartPayload, error) {
	ds, err := s.Current()
	if err != nil {
		return domain.ChartPayload{}, err
	}
	if selected, err = resolveSelection(ds, selected); err != nil {
		return domain.ChartPayload{}, err
	}

	payload := chart.Build(ds, selected, s.chart)
	if s.metrics != nil {
		s.metrics.ChartRequestsTotal.Add(ctx, 1)
	}
	s.logger.DebugContext(ctx, "Chart built",
		slog.Any("candidates", selected),
		slog.Int("rows", payload.RowCount))
	return payload, nil
}

// Records returns the long-form records of the selected candidates. A nil
// selection means every candidate of the active dataset.
func (s *DatasetService) Records(ctx context.Context, selected []string) ([]domain.VoteRecord, error) {
	ds, err := s.Current()
	if err != nil {
		return nil, err
	}
	if selected, err = resolveSelection(ds, selected); err != nil {
		return nil, err
	}
	return ds.Filter(selected), nil
}

// UnknownCandidatesError reports selected names that are not configured
type UnknownCandidatesError struct {
	Names []string
}

func (e *UnknownCandidatesError) Error() string {
	return fmt.Sprintf("unknown candidates: %v", e.Names)
}

// resolveSelection checks selected against the same dataset the caller
// renders from, so a concurrent reload cannot split the two.
func resolveSelection(ds *pipeline.Dataset, selected []string) ([]string, error) {
	if selected == nil {
		return ds.CandidateNames(), nil
	}
	if unknown := chart.Unknown(selected, ds.CandidateNames()); len(unknown) > 0 {
		return nil, apperrors.NewAppValidationError("invalid candidate selection",
			&UnknownCandidatesError{Names: unknown}).
			WithContext("dataset_id", ds.ID.String())
	}
	return selected, nil
}
