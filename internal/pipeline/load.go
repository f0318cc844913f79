package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"votecompare/internal/config"
	apperrors "votecompare/internal/errors"
	"votecompare/internal/infrastructure"
	"votecompare/internal/ingest"
	"votecompare/internal/tally"
	"votecompare/pkg/contracts/domain"
)

const TracerName = "votecompare.pipeline"

// maxConcurrentSources bounds how many sources are read at once
const maxConcurrentSources = 4

type loader struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
	paths   *config.Paths
	aliases []string
	now     func() time.Time
}

// Option configures Load
type Option func(*loader)

// WithLogger sets the logger used for load progress
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) { l.logger = logger }
}

// WithTracer overrides the global tracer
func WithTracer(tracer trace.Tracer) Option {
	return func(l *loader) { l.tracer = tracer }
}

// WithMetrics records load metrics on m
func WithMetrics(m *infrastructure.PipelineMetrics) Option {
	return func(l *loader) { l.metrics = m }
}

// WithPaths resolves relative source paths against the data directory
func WithPaths(paths *config.Paths) Option {
	return func(l *loader) { l.paths = paths }
}

// WithNeighborhoodAliases sets the column names tried for sources that do
// not name their neighborhood column
func WithNeighborhoodAliases(aliases []string) Option {
	return func(l *loader) { l.aliases = aliases }
}

// WithClock sets the time source for Dataset.LoadedAt
func WithClock(now func() time.Time) Option {
	return func(l *loader) { l.now = now }
}

// Load reads every source and builds the combined dataset. Any source error
// aborts the load; the error names the source.
func Load(ctx context.Context, sources []config.SourceConfig, opts ...Option) (*Dataset, error) {
	l := &loader{
		logger: slog.Default(),
		tracer: otel.Tracer(TracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	start := time.Now()
	ctx, span := l.tracer.Start(ctx, "pipeline.load",
		trace.WithAttributes(attribute.Int("pipeline.sources", len(sources))))
	defer span.End()

	l.logger.InfoContext(ctx, "Loading dataset", slog.Int("sources", len(sources)))

	ds, err := l.load(ctx, sources)
	infrastructure.RecordDatasetLoad(ctx, l.metrics, time.Since(start), recordCount(ds), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		l.logger.ErrorContext(ctx, "Dataset load failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("dataset.id", ds.ID.String()),
		attribute.Int("dataset.neighborhoods", len(ds.Domain)),
		attribute.Int("dataset.rows", len(ds.Records)),
	)
	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("dataset_id", ds.ID.String()),
		slog.Int("candidates", len(ds.Candidates)),
		slog.Int("neighborhoods", len(ds.Domain)),
		slog.Int("rows", len(ds.Records)),
		slog.Duration("duration", time.Since(start)))
	return ds, nil
}

func (l *loader) load(ctx context.Context, sources []config.SourceConfig) (*Dataset, error) {
	if len(sources) == 0 {
		return nil, apperrors.NewConfigError("no sources configured", nil)
	}

	tables := make([]tally.CandidateTable, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSources)
	for i, src := range sources {
		g.Go(func() error {
			ct, err := l.prepare(gctx, src)
			if err != nil {
				return apperrors.NewParsingError(fmt.Sprintf("source %q", src.Name), err).
					WithContext("source", src.Name)
			}
			tables[i] = ct
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dom, aligned, err := tally.Reconcile(tables)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to align neighborhoods", err)
	}
	records, err := tally.Combine(aligned)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to combine sources", err)
	}

	candidates := make([]domain.Candidate, len(sources))
	for i, src := range sources {
		candidates[i] = domain.Candidate{Name: src.Name, Color: src.Color}
	}

	return &Dataset{
		ID:         uuid.New(),
		LoadedAt:   l.now(),
		Domain:     dom,
		Candidates: candidates,
		Records:    records,
	}, nil
}

// prepare reads one source and brings it to the canonical
// [neighborhood, votes_absolute, vote_share_percent] shape
func (l *loader) prepare(ctx context.Context, src config.SourceConfig) (tally.CandidateTable, error) {
	ctx, span := l.tracer.Start(ctx, "pipeline.source",
		trace.WithAttributes(
			attribute.String("source.name", src.Name),
			attribute.String("source.path", src.Path),
		))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return tally.CandidateTable{}, err
	}

	opts := ingest.Options{Sheet: src.Sheet}
	if src.Delimiter != "" {
		opts.Delimiter, _ = utf8.DecodeRuneInString(src.Delimiter)
	}

	path := l.resolve(src.Path)
	t, err := ingest.ReadFile(path, opts)
	if err != nil {
		return l.fail(ctx, err)
	}
	if l.metrics != nil {
		l.metrics.SourceRowsTotal.Add(ctx, int64(t.Len()),
			metric.WithAttributes(attribute.String("source", src.Name)))
	}

	aliases := l.aliases
	if src.NeighborhoodColumn != "" {
		aliases = []string{src.NeighborhoodColumn}
	}
	if t, err = tally.UnifySchema(t, domain.ColumnNeighborhood, aliases...); err != nil {
		return l.fail(ctx, err)
	}
	if t, err = tally.AggregateBy(t, domain.ColumnNeighborhood, src.VotesColumn); err != nil {
		return l.fail(ctx, err)
	}
	if t, err = tally.NormalizePercentages(t, src.VotesColumn); err != nil {
		return l.fail(ctx, err)
	}

	span.SetAttributes(attribute.Int("source.neighborhoods", t.Len()))
	l.logger.DebugContext(ctx, "Source prepared",
		slog.String("source", src.Name),
		slog.String("path", path),
		slog.Int("neighborhoods", t.Len()))

	return tally.CandidateTable{Candidate: src.Name, Table: t}, nil
}

func (l *loader) resolve(path string) string {
	if l.paths == nil {
		return path
	}
	return l.paths.GetSourcePath(path)
}

func (l *loader) fail(ctx context.Context, err error) (tally.CandidateTable, error) {
	infrastructure.RecordError(ctx, err)
	return tally.CandidateTable{}, err
}

func recordCount(ds *Dataset) int {
	if ds == nil {
		return 0
	}
	return len(ds.Records)
}
