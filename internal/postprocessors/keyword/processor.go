// Package keyword provides a keyword-based candidate filter.
package keyword

import (
	"context"
	"strings"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Processor drops candidates whose text lacks every required keyword
// or contains any excluded keyword. Matching is case-insensitive
// substring matching.
type Processor struct {
	required []string
	excluded []string
}

// Option configures the keyword processor.
type Option func(*Processor)

// WithRequired sets the keywords a candidate must contain at least one of.
func WithRequired(keywords ...string) Option {
	return func(p *Processor) {
		p.required = append(p.required, keywords...)
	}
}

// WithExcluded sets the keywords that disqualify a candidate.
func WithExcluded(keywords ...string) Option {
	return func(p *Processor) {
		p.excluded = append(p.excluded, keywords...)
	}
}

// New creates a keyword filter with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the stage name.
func (p *Processor) Name() string {
	return "keyword"
}

// Process filters the candidate list. With no configured keywords it is
// a no-op.
func (p *Processor) Process(
	_ context.Context, _ domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	if len(p.required) == 0 && len(p.excluded) == 0 {
		return candidates, nil
	}

	kept := make([]domain.ScoredNode, 0, len(candidates))
	for _, c := range candidates {
		text := strings.ToLower(c.Node.Text)
		if !p.keep(text) {
			logger.Debug("keyword filter dropped node %s", c.Node.ID)
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}

func (p *Processor) keep(lowerText string) bool {
	for _, kw := range p.excluded {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return false
		}
	}
	if len(p.required) == 0 {
		return true
	}
	for _, kw := range p.required {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
