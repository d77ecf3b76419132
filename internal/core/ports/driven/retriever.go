package driven

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// Retriever returns scored candidate nodes for a query.
// The index and backend behind it are adapter concerns; core only sees
// the ordered candidate list.
type Retriever interface {
	// Retrieve returns up to topK candidates, best first.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredNode, error)
}
