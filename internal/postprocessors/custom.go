package postprocessors

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
)

// ProcessFunc is the signature of a custom stage body.
type ProcessFunc func(ctx context.Context, query domain.Query, candidates []domain.ScoredNode) ([]domain.ScoredNode, error)

// funcStage adapts a plain function into a named pipeline stage.
type funcStage struct {
	name string
	fn   ProcessFunc
}

// NewFunc wraps fn as a NodePostprocessor. This is the extension point
// for behaviours outside the built-in stage set.
func NewFunc(name string, fn ProcessFunc) driven.NodePostprocessor {
	return &funcStage{name: name, fn: fn}
}

func (f *funcStage) Name() string {
	return f.name
}

func (f *funcStage) Process(
	ctx context.Context, query domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	return f.fn(ctx, query, candidates)
}
