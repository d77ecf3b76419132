// Package similarity provides a score-cutoff candidate filter.
package similarity

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Processor drops candidates scored below a cutoff. Unscored
// candidates pass through unchanged: a missing score is never treated
// as zero. With StrictScoring set, an unscored candidate instead fails
// the call with domain.ErrMissingScore.
type Processor struct {
	cutoff float64
	strict bool
}

// Option configures the similarity processor.
type Option func(*Processor)

// WithCutoff sets the minimum score a candidate must reach.
func WithCutoff(cutoff float64) Option {
	return func(p *Processor) {
		p.cutoff = cutoff
	}
}

// WithStrictScoring makes unscored candidates an error instead of a
// passthrough.
func WithStrictScoring() Option {
	return func(p *Processor) {
		p.strict = true
	}
}

// New creates a similarity cutoff filter with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the stage name.
func (p *Processor) Name() string {
	return "similarity"
}

// Process filters the candidate list by score.
func (p *Processor) Process(
	_ context.Context, _ domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	kept := make([]domain.ScoredNode, 0, len(candidates))
	for _, c := range candidates {
		if c.Score == nil {
			if p.strict {
				return nil, fmt.Errorf("node %s: %w", c.Node.ID, domain.ErrMissingScore)
			}
			kept = append(kept, c)
			continue
		}
		if *c.Score < p.cutoff {
			logger.Debug("similarity cutoff dropped node %s (%.4f < %.4f)", c.Node.ID, *c.Score, p.cutoff)
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}
