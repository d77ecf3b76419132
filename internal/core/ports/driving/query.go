package driving

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// QueryService runs retrieval through the configured postprocessor
// pipeline and returns the final candidate list.
type QueryService interface {
	// Query retrieves up to topK candidates and applies the pipeline.
	Query(ctx context.Context, query domain.Query, topK int) ([]domain.ScoredNode, error)
}
