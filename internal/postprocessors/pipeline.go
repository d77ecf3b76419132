// Package postprocessors provides the candidate-list processing chain.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Pipeline chains multiple NodePostprocessors and runs them in order.
// It implements the NodePostprocessorPipeline interface.
type Pipeline struct {
	processors []driven.NodePostprocessor
}

// NewPipeline creates a new processing pipeline with the given stages.
// Stages are executed in the order provided; an empty pipeline is the
// identity transform.
func NewPipeline(processors ...driven.NodePostprocessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the candidates through all stages in order.
// Each stage receives the previous stage's output. Stages never touch
// the stored corpus; they only transform the list they are handed.
func (p *Pipeline) Process(
	ctx context.Context, query domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	for _, processor := range p.processors {
		var err error
		before := len(candidates)
		candidates, err = processor.Process(ctx, query, candidates)
		if err != nil {
			return nil, fmt.Errorf("postprocessor %s: %w", processor.Name(), err)
		}
		logger.Debug("stage %s: %d -> %d candidates", processor.Name(), before, len(candidates))
	}
	return candidates, nil
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(processor driven.NodePostprocessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
