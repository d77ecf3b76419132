package driving

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// EvalService computes ranking metrics over labelled retrieval results.
type EvalService interface {
	// Evaluate scores a dataset at cutoff k and returns the aggregate.
	// Records with empty ground truth are excluded and counted.
	Evaluate(ctx context.Context, records []domain.EvalRecord, k int) (*domain.EvalSummary, error)
}
