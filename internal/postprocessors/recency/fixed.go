package recency

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// DefaultTopK is the number of candidates a fixed recency stage keeps.
const DefaultTopK = 1

// Fixed keeps only the most recent candidates: sort descending by
// timestamp, keep the top K, date ties broken by original score.
type Fixed struct {
	topK          int
	dateKey       string
	failOnMissing bool
}

// FixedConfig configures the fixed recency stage.
type FixedConfig struct {
	// TopK is the number of candidates to keep (default: 1).
	TopK int

	// DateKey is the metadata key holding the timestamp
	// (default: "date").
	DateKey string

	// FailOnMissing fails the whole call on a candidate without a
	// timestamp instead of dropping it.
	FailOnMissing bool
}

// NewFixed creates a fixed recency stage.
func NewFixed(cfg FixedConfig) (*Fixed, error) {
	if cfg.TopK == 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.TopK < 0 {
		return nil, fmt.Errorf("%w: top k %d must be positive", domain.ErrInvalidConfig, cfg.TopK)
	}
	if cfg.DateKey == "" {
		cfg.DateKey = DefaultDateKey
	}
	return &Fixed{
		topK:          cfg.TopK,
		dateKey:       cfg.DateKey,
		failOnMissing: cfg.FailOnMissing,
	}, nil
}

// Name returns the stage name.
func (p *Fixed) Name() string {
	return "fixed_recency"
}

// Process keeps the TopK most recent candidates.
func (p *Fixed) Process(
	_ context.Context, _ domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	dated, err := extractTimes(candidates, p.dateKey, p.failOnMissing)
	if err != nil {
		return nil, err
	}

	sortNewestFirst(dated)

	limit := p.topK
	if limit > len(dated) {
		limit = len(dated)
	}
	kept := make([]domain.ScoredNode, 0, limit)
	for _, d := range dated[:limit] {
		kept = append(kept, d.candidate)
	}
	return kept, nil
}
