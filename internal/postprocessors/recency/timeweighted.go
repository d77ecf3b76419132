package recency

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// TimeWeighted rescores candidates with a recency boost:
//
//	score = original + (1 - timeDecay) ^ hoursPassed
//
// and re-sorts descending by the new score. A decay of 0 disables
// aging (constant boost of 1); a decay approaching 1 makes the boost
// vanish for any positive age.
type TimeWeighted struct {
	timeDecay     float64
	dateKey       string
	failOnMissing bool
	clock         driven.Clock
}

// TimeWeightedConfig configures the time-weighted recency stage.
type TimeWeightedConfig struct {
	// TimeDecay is the hourly decay rate in [0, 1).
	TimeDecay float64

	// DateKey is the metadata key holding the timestamp
	// (default: "date").
	DateKey string

	// FailOnMissing fails the whole call on a candidate without a
	// timestamp or score instead of dropping it.
	FailOnMissing bool

	// Clock supplies the reference time when the query has none.
	// Optional: without it the newest candidate timestamp is used.
	Clock driven.Clock
}

// NewTimeWeighted creates a time-weighted recency stage.
// Returns domain.ErrInvalidConfig when TimeDecay is outside [0, 1).
func NewTimeWeighted(cfg TimeWeightedConfig) (*TimeWeighted, error) {
	if cfg.TimeDecay < 0 || cfg.TimeDecay >= 1 {
		return nil, fmt.Errorf("%w: time decay %g must be in [0, 1)", domain.ErrInvalidConfig, cfg.TimeDecay)
	}
	if cfg.DateKey == "" {
		cfg.DateKey = DefaultDateKey
	}
	return &TimeWeighted{
		timeDecay:     cfg.TimeDecay,
		dateKey:       cfg.DateKey,
		failOnMissing: cfg.FailOnMissing,
		clock:         cfg.Clock,
	}, nil
}

// Name returns the stage name.
func (p *TimeWeighted) Name() string {
	return "time_weighted_recency"
}

// Process rescores and re-sorts the candidates.
// Candidates without an original score cannot be rescored; they are
// dropped with a warning, or fail the call when FailOnMissing is set.
func (p *TimeWeighted) Process(
	_ context.Context, query domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	dated, err := extractTimes(candidates, p.dateKey, p.failOnMissing)
	if err != nil {
		return nil, err
	}
	if len(dated) == 0 {
		return []domain.ScoredNode{}, nil
	}

	reference := p.referenceTime(query, dated)

	rescored := make([]domain.ScoredNode, 0, len(dated))
	for _, d := range dated {
		if d.candidate.Score == nil {
			if p.failOnMissing {
				return nil, fmt.Errorf("node %s: %w", d.candidate.Node.ID, domain.ErrMissingScore)
			}
			logger.Warn("time-weighted recency: dropping unscored node %s", d.candidate.Node.ID)
			continue
		}

		hours := reference.Sub(d.at).Hours()
		if hours < 0 {
			hours = 0
		}
		boost := math.Pow(1-p.timeDecay, hours)
		rescored = append(rescored, domain.NewScoredNode(d.candidate.Node, *d.candidate.Score+boost))
	}

	sort.SliceStable(rescored, func(i, j int) bool {
		return *rescored[i].Score > *rescored[j].Score
	})
	return rescored, nil
}

// referenceTime picks the moment ages are measured against: the query
// time when set, otherwise the configured clock, otherwise the newest
// candidate timestamp.
func (p *TimeWeighted) referenceTime(query domain.Query, dated []datedNode) time.Time {
	if !query.Time.IsZero() {
		return query.Time
	}
	if p.clock != nil {
		return p.clock.Now()
	}
	newest := dated[0].at
	for _, d := range dated[1:] {
		if d.at.After(newest) {
			newest = d.at
		}
	}
	return newest
}
