package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driving"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultTopK is the candidate count used when the caller passes 0.
const DefaultTopK = 10

// QueryService retrieves candidates and refines them through the
// postprocessor pipeline.
type QueryService struct {
	retriever driven.Retriever
	pipeline  driven.NodePostprocessorPipeline
}

// NewQueryService creates a new query service. The pipeline is
// optional; when nil, raw retriever output is returned.
func NewQueryService(retriever driven.Retriever, pipeline driven.NodePostprocessorPipeline) (*QueryService, error) {
	if retriever == nil {
		return nil, fmt.Errorf("%w: retriever is required", domain.ErrInvalidConfig)
	}
	return &QueryService{retriever: retriever, pipeline: pipeline}, nil
}

// Query runs retrieval then the pipeline.
func (s *QueryService) Query(ctx context.Context, query domain.Query, topK int) ([]domain.ScoredNode, error) {
	logger.Section("Query Execution")
	logger.Debug("query: %q", query.Text)

	text := strings.TrimSpace(query.Text)
	if text == "" {
		logger.Debug("empty query, returning no results")
		return []domain.ScoredNode{}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	candidates, err := s.retriever.Retrieve(ctx, text, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving candidates: %w", err)
	}
	logger.Debug("retrieved %d candidates", len(candidates))

	if s.pipeline == nil {
		return candidates, nil
	}

	results, err := s.pipeline.Process(ctx, query, candidates)
	if err != nil {
		return nil, fmt.Errorf("refining candidates: %w", err)
	}

	logger.Info("query returned %d results", len(results))
	return results, nil
}
