// Package neighbor provides prev/next neighbour expansion stages.
//
// Candidates keep their relative order; fetched neighbours are inserted
// around them with a score of zero, since they contribute context
// rather than ranked relevance. Neighbour lookups go through the
// NodeStore: a missing neighbour simply ends the walk in that
// direction.
package neighbor

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Default configuration values.
const (
	DefaultNumNodes     = 1
	DefaultFetchTimeout = 5 * time.Second
)

// Processor is the fixed-direction neighbour expander.
type Processor struct {
	store    driven.NodeStore
	numNodes int
	mode     domain.RelationDirection
	timeout  time.Duration
}

// Config configures the neighbour expander.
type Config struct {
	// Store resolves node identifiers. Required.
	Store driven.NodeStore

	// NumNodes is the number of hops to walk in each configured
	// direction (default: 1).
	NumNodes int

	// Mode selects the walk direction (default: next).
	Mode domain.RelationDirection

	// FetchTimeout bounds each store lookup. A timed-out fetch is
	// treated as a missing neighbour (default: 5s).
	FetchTimeout time.Duration
}

// New creates a fixed-direction neighbour expander.
func New(cfg Config) (*Processor, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("%w: node store is required", domain.ErrInvalidConfig)
	}
	if cfg.NumNodes == 0 {
		cfg.NumNodes = DefaultNumNodes
	}
	if cfg.NumNodes < 0 {
		return nil, fmt.Errorf("%w: num nodes %d must be positive", domain.ErrInvalidConfig, cfg.NumNodes)
	}
	switch cfg.Mode {
	case "":
		cfg.Mode = domain.DirectionNext
	case domain.DirectionPrevious, domain.DirectionNext, domain.DirectionBoth:
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidConfig, cfg.Mode)
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	return &Processor{
		store:    cfg.Store,
		numNodes: cfg.NumNodes,
		mode:     cfg.Mode,
		timeout:  cfg.FetchTimeout,
	}, nil
}

// Name returns the stage name.
func (p *Processor) Name() string {
	return "prev_next"
}

// Process expands each candidate with its chain neighbours.
func (p *Processor) Process(
	ctx context.Context, _ domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	return expand(ctx, p.store, candidates, p.numNodes, p.mode, p.timeout), nil
}

// expand walks prev/next links for every candidate and splices the
// fetched neighbours in, deduplicating by node ID and preserving the
// candidates' relative order.
func expand(
	ctx context.Context,
	store driven.NodeStore,
	candidates []domain.ScoredNode,
	numNodes int,
	mode domain.RelationDirection,
	timeout time.Duration,
) []domain.ScoredNode {
	if mode == domain.DirectionNone {
		return candidates
	}

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c.Node.ID] = true
	}

	var result []domain.ScoredNode
	appendNew := func(nodes []domain.Node) {
		for _, n := range nodes {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			result = append(result, domain.NewScoredNode(n, 0))
		}
	}

	appended := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if appended[c.Node.ID] {
			continue
		}
		appended[c.Node.ID] = true

		if mode == domain.DirectionPrevious || mode == domain.DirectionBoth {
			prev := walk(ctx, store, c.Node, numNodes, timeout, backward)
			// Walked newest-to-oldest; insert in chain order.
			reverse(prev)
			appendNew(prev)
		}

		result = append(result, c)

		if mode == domain.DirectionNext || mode == domain.DirectionBoth {
			appendNew(walk(ctx, store, c.Node, numNodes, timeout, forward))
		}
	}
	return result
}

// direction selects which link a walk follows.
type direction int

const (
	backward direction = iota
	forward
)

// walk follows links from node for up to hops steps, stopping at chain
// boundaries, lookup failures, and timeouts.
func walk(
	ctx context.Context,
	store driven.NodeStore,
	node domain.Node,
	hops int,
	timeout time.Duration,
	dir direction,
) []domain.Node {
	var out []domain.Node
	cur := node
	for i := 0; i < hops; i++ {
		id := cur.NextID
		if dir == backward {
			id = cur.PrevID
		}
		if id == "" {
			break
		}

		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		next, err := store.GetNode(fetchCtx, id)
		cancel()
		if err != nil {
			// No neighbour in that direction; the expander never fails.
			logger.Debug("neighbor expansion: node %s unavailable: %v", id, err)
			break
		}
		out = append(out, *next)
		cur = *next
	}
	return out
}

func reverse(nodes []domain.Node) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
