package http

import (
	"context"

	"votecompare/internal/pipeline"
	"votecompare/pkg/contracts/domain"
)

// DatasetServiceInterface defines the dataset operations used by the handlers
type DatasetServiceInterface interface {
	Reload(ctx context.Context) (*pipeline.Dataset, error)
	Candidates(ctx context.Context) ([]domain.Candidate, error)
	Chart(ctx context.Context, selected []string) (domain.ChartPayload, error)
	Records(ctx context.Context, selected []string) ([]domain.VoteRecord, error)
}
