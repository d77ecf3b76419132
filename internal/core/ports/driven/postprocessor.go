package driven

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// NodePostprocessor transforms a ranked candidate list.
// Postprocessors are chained in a pipeline (e.g., keyword filtering,
// similarity cutoff, recency rescoring, neighbour expansion).
//
// Stages are side-effect-free with respect to the corpus: they may
// reorder, drop, or annotate the candidates they receive, and may add
// nodes fetched from the NodeStore by identifier, but never mutate
// stored nodes.
type NodePostprocessor interface {
	// Name returns the stage name for logging and configuration.
	Name() string

	// Process transforms the candidate list for the given query.
	Process(ctx context.Context, query domain.Query, candidates []domain.ScoredNode) ([]domain.ScoredNode, error)
}

// NodePostprocessorPipeline chains multiple NodePostprocessors.
type NodePostprocessorPipeline interface {
	// Process runs the candidates through all stages in order.
	// An empty pipeline is the identity transform.
	Process(ctx context.Context, query domain.Query, candidates []domain.ScoredNode) ([]domain.ScoredNode, error)
}
