package neighbor

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Directional cue phrases, checked as lowercase substrings.
var (
	backwardCues = []string{
		"previous", "earlier", "before", "prior", "preceding", "last time",
	}
	forwardCues = []string{
		"next", "later", "after", "following", "subsequent",
		"more detail", "more information", "continue", "what happened then",
	}
)

// Auto is the query-aware neighbour expander: it inspects the query
// text for directional cues and expands forward, backward, both, or
// not at all. The heuristic is best-effort and never fails - an
// undetected cue simply yields no expansion.
type Auto struct {
	store    driven.NodeStore
	numNodes int
	timeout  time.Duration
}

// NewAuto creates an auto-direction neighbour expander.
// Mode in cfg is ignored; the query decides per call.
func NewAuto(cfg Config) (*Auto, error) {
	cfg.Mode = domain.DirectionBoth // validated, then overridden per query
	fixed, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Auto{
		store:    fixed.store,
		numNodes: fixed.numNodes,
		timeout:  fixed.timeout,
	}, nil
}

// Name returns the stage name.
func (p *Auto) Name() string {
	return "auto_prev_next"
}

// Process expands candidates in the direction the query implies.
func (p *Auto) Process(
	ctx context.Context, query domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	mode := DetectDirection(query.Text)
	if mode == domain.DirectionNone {
		return candidates, nil
	}
	logger.Debug("auto neighbor expansion: direction %s for query %q", mode, query.Text)
	return expand(ctx, p.store, candidates, p.numNodes, mode, p.timeout), nil
}

// DetectDirection inspects query text for directional cues.
// Returns DirectionNone when no cue is found.
func DetectDirection(query string) domain.RelationDirection {
	q := strings.ToLower(query)

	back := containsAny(q, backwardCues)
	fwd := containsAny(q, forwardCues)

	switch {
	case back && fwd:
		return domain.DirectionBoth
	case back:
		return domain.DirectionPrevious
	case fwd:
		return domain.DirectionNext
	default:
		return domain.DirectionNone
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
