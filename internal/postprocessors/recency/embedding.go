package recency

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Default configuration values for the embedding-aware stage.
const (
	DefaultSimilarityCutoff = 0.9
	DefaultEmbedTimeout     = 10 * time.Second
	DefaultEmbedParallelism = 4
)

// Embedding is the embedding-aware recency filter. Candidates are
// ordered newest first; scanning from most to least recent, any
// candidate whose embedding is too similar to an already-kept newer
// candidate is dropped. This removes stale near-duplicates of
// since-updated content while preserving the newest version of each
// cluster.
type Embedding struct {
	embedder      driven.EmbeddingService
	cutoff        float64
	dateKey       string
	failOnMissing bool
	timeout       time.Duration
	parallelism   int
}

// EmbeddingConfig configures the embedding-aware recency stage.
type EmbeddingConfig struct {
	// Embedder computes text embeddings. Required.
	Embedder driven.EmbeddingService

	// SimilarityCutoff is the cosine similarity above which an older
	// candidate counts as a duplicate (default: 0.9).
	SimilarityCutoff float64

	// DateKey is the metadata key holding the timestamp
	// (default: "date").
	DateKey string

	// FailOnMissing fails the whole call on a candidate without a
	// timestamp instead of dropping it.
	FailOnMissing bool

	// EmbedTimeout bounds each embedding call. On timeout the
	// candidate is kept unfiltered rather than failing the chain
	// (default: 10s).
	EmbedTimeout time.Duration

	// EmbedParallelism bounds the embedding fan-out (default: 4).
	EmbedParallelism int
}

// NewEmbedding creates an embedding-aware recency stage.
func NewEmbedding(cfg EmbeddingConfig) (*Embedding, error) {
	if cfg.Embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if cfg.SimilarityCutoff == 0 {
		cfg.SimilarityCutoff = DefaultSimilarityCutoff
	}
	if cfg.SimilarityCutoff < 0 || cfg.SimilarityCutoff > 1 {
		return nil, fmt.Errorf("%w: similarity cutoff %g must be in [0, 1]", domain.ErrInvalidConfig, cfg.SimilarityCutoff)
	}
	if cfg.DateKey == "" {
		cfg.DateKey = DefaultDateKey
	}
	if cfg.EmbedTimeout <= 0 {
		cfg.EmbedTimeout = DefaultEmbedTimeout
	}
	if cfg.EmbedParallelism <= 0 {
		cfg.EmbedParallelism = DefaultEmbedParallelism
	}
	return &Embedding{
		embedder:      cfg.Embedder,
		cutoff:        cfg.SimilarityCutoff,
		dateKey:       cfg.DateKey,
		failOnMissing: cfg.FailOnMissing,
		timeout:       cfg.EmbedTimeout,
		parallelism:   cfg.EmbedParallelism,
	}, nil
}

// Name returns the stage name.
func (p *Embedding) Name() string {
	return "embedding_recency"
}

// Process orders candidates newest first and drops older
// near-duplicates of already-kept candidates.
func (p *Embedding) Process(
	ctx context.Context, _ domain.Query, candidates []domain.ScoredNode,
) ([]domain.ScoredNode, error) {
	dated, err := extractTimes(candidates, p.dateKey, p.failOnMissing)
	if err != nil {
		return nil, err
	}
	if len(dated) == 0 {
		return []domain.ScoredNode{}, nil
	}

	sortNewestFirst(dated)

	vectors := p.embedAll(ctx, dated)

	var kept []domain.ScoredNode
	var keptVectors [][]float32
	for i, d := range dated {
		if isDuplicate(vectors[i], keptVectors, p.cutoff) {
			logger.Debug("embedding recency dropped stale duplicate %s", d.candidate.Node.ID)
			continue
		}
		kept = append(kept, d.candidate)
		keptVectors = append(keptVectors, vectors[i])
	}
	return kept, nil
}

// embedAll fetches embeddings with a bounded fan-out. A failed or
// timed-out call leaves a nil vector: the candidate degrades to
// unfiltered instead of failing the chain.
func (p *Embedding) embedAll(ctx context.Context, dated []datedNode) [][]float32 {
	vectors := make([][]float32, len(dated))

	g := new(errgroup.Group)
	g.SetLimit(p.parallelism)

	for i := range dated {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			vec, err := p.embedder.Embed(callCtx, dated[i].candidate.Node.Text)
			if err != nil {
				logger.Warn("embedding recency: embed node %s: %v", dated[i].candidate.Node.ID, err)
				return nil
			}
			vectors[i] = vec
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; they degrade in place
	return vectors
}

// isDuplicate reports whether vec is too similar to any kept vector.
// Nil vectors (failed embeds) never match.
func isDuplicate(vec []float32, kept [][]float32, cutoff float64) bool {
	if vec == nil {
		return false
	}
	for _, k := range kept {
		if k == nil {
			continue
		}
		if CosineSimilarity(vec, k) > cutoff {
			return true
		}
	}
	return false
}

// CosineSimilarity computes the cosine similarity of two vectors.
// Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
