package services

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driving"
	"github.com/custodia-labs/ragpipe/internal/evaluation"
)

// Ensure EvalService implements the interface.
var _ driving.EvalService = (*EvalService)(nil)

// EvalService scores labelled retrieval datasets.
type EvalService struct{}

// NewEvalService creates a new evaluation service.
func NewEvalService() *EvalService {
	return &EvalService{}
}

// Evaluate aggregates hit-rate, MRR and precision at cutoff k over
// the dataset. Records with empty ground truth are excluded from the
// mean and reported in the summary.
func (s *EvalService) Evaluate(ctx context.Context, records []domain.EvalRecord, k int) (*domain.EvalSummary, error) {
	return evaluation.Aggregate(ctx, records, k)
}
