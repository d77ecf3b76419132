// Package evaluation computes ranking-quality metrics for retrieval
// outputs against labelled ground truth.
package evaluation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// DefaultParallelism bounds concurrent record evaluation during
// aggregation.
const DefaultParallelism = 8

// Evaluate computes hit-rate, MRR, and precision@k for one retrieval
// result. k <= 0 falls back to the full retrieved length; an explicit
// negative k or empty relevant set is domain.ErrInvalidInput - an
// undefined metric, never silently zero.
func Evaluate(retrieved []string, relevant []string, k int) (domain.RetrievalMetrics, error) {
	if k < 0 {
		return domain.RetrievalMetrics{}, fmt.Errorf("%w: cutoff k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if len(relevant) == 0 {
		return domain.RetrievalMetrics{}, fmt.Errorf("%w: empty ground truth", domain.ErrInvalidInput)
	}
	if k == 0 {
		k = len(retrieved)
	}
	if k == 0 {
		return domain.RetrievalMetrics{}, fmt.Errorf("%w: nothing retrieved and no cutoff", domain.ErrInvalidInput)
	}

	relevantSet := make(map[string]bool, len(relevant))
	for _, id := range relevant {
		relevantSet[id] = true
	}

	top := retrieved
	if len(top) > k {
		top = top[:k]
	}

	var metrics domain.RetrievalMetrics
	hits := 0
	for rank, id := range top {
		if !relevantSet[id] {
			continue
		}
		hits++
		if metrics.MRR == 0 {
			metrics.HitRate = 1
			metrics.MRR = 1 / float64(rank+1)
		}
	}
	metrics.Precision = float64(hits) / float64(k)
	return metrics, nil
}

// Aggregate evaluates every record at cutoff k and returns the
// arithmetic mean of each metric. Records with empty ground truth are
// excluded from the mean and counted in the summary rather than
// failing the batch. Records are evaluated in parallel; they share no
// state beyond the accumulating sums.
func Aggregate(ctx context.Context, records []domain.EvalRecord, k int) (*domain.EvalSummary, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: cutoff k must be positive, got %d", domain.ErrInvalidInput, k)
	}

	var (
		mu       sync.Mutex
		sums     domain.RetrievalMetrics
		included int
		excluded int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultParallelism)

	for i := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := records[i]
			if len(rec.Relevant) == 0 {
				mu.Lock()
				excluded++
				mu.Unlock()
				logger.Warn("evaluation: skipping record %q: empty ground truth", rec.Query)
				return nil
			}

			m, err := Evaluate(rec.Retrieved, rec.Relevant, k)
			if err != nil {
				return fmt.Errorf("record %q: %w", rec.Query, err)
			}

			mu.Lock()
			sums.HitRate += m.HitRate
			sums.MRR += m.MRR
			sums.Precision += m.Precision
			included++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &domain.EvalSummary{Evaluated: included, Excluded: excluded}
	if included > 0 {
		n := float64(included)
		summary.Metrics = domain.RetrievalMetrics{
			HitRate:   sums.HitRate / n,
			MRR:       sums.MRR / n,
			Precision: sums.Precision / n,
		}
	}
	return summary, nil
}
