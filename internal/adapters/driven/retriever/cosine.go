// Package retriever provides an in-process vector retriever that
// scores stored nodes by cosine similarity against a query embedding.
package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

var _ driven.Retriever = (*Cosine)(nil)

// Cosine retrieves nodes by cosine similarity over an in-memory
// vector index built from the node store.
type Cosine struct {
	store    driven.NodeStore
	embedder driven.EmbeddingService

	mu      sync.RWMutex
	vectors map[string][]float32
}

// NewCosine creates a retriever over the given store and embedder.
func NewCosine(store driven.NodeStore, embedder driven.EmbeddingService) (*Cosine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: node store is required", domain.ErrInvalidConfig)
	}
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedding service is required", domain.ErrEmbeddingUnavailable)
	}
	return &Cosine{
		store:    store,
		embedder: embedder,
		vectors:  make(map[string][]float32),
	}, nil
}

// Index embeds every stored node and rebuilds the vector index.
// Call after ingesting documents and before Retrieve.
func (r *Cosine) Index(ctx context.Context) error {
	nodes, err := r.store.ListNodes(ctx)
	if err != nil {
		return fmt.Errorf("listing nodes: %w", err)
	}

	texts := make([]string, len(nodes))
	for i, node := range nodes {
		texts[i] = node.Text
	}

	logger.Debug("indexing %d nodes with model %s", len(nodes), r.embedder.ModelName())
	embeddings, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding nodes: %w", err)
	}

	vectors := make(map[string][]float32, len(nodes))
	for i, node := range nodes {
		vectors[node.ID] = embeddings[i]
	}

	r.mu.Lock()
	r.vectors = vectors
	r.mu.Unlock()
	return nil
}

// Retrieve returns up to topK nodes, most similar first.
func (r *Cosine) Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredNode, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive", domain.ErrInvalidInput)
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	type hit struct {
		id    string
		score float64
	}

	r.mu.RLock()
	hits := make([]hit, 0, len(r.vectors))
	for id, vec := range r.vectors {
		hits = append(hits, hit{id: id, score: cosine(queryVec, vec)})
	}
	r.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].id < hits[j].id
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}

	results := make([]domain.ScoredNode, 0, len(hits))
	for _, h := range hits {
		node, err := r.store.GetNode(ctx, h.id)
		if err != nil {
			return nil, fmt.Errorf("fetching node %s: %w", h.id, err)
		}
		results = append(results, domain.NewScoredNode(*node, h.score))
	}
	return results, nil
}

// cosine computes cosine similarity between two vectors. Mismatched
// lengths or zero vectors score 0.
func cosine(a, b []float32) float64 {
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
