package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driving"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// NodeParser turns documents into linked nodes.
type NodeParser interface {
	ParseAll(ctx context.Context, docs []domain.Document) ([]domain.Node, error)
}

// IngestService parses documents into nodes and persists both.
type IngestService struct {
	parser NodeParser
	store  driven.NodeStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(parser NodeParser, store driven.NodeStore) (*IngestService, error) {
	if parser == nil {
		return nil, fmt.Errorf("%w: node parser is required", domain.ErrInvalidConfig)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: node store is required", domain.ErrInvalidConfig)
	}
	return &IngestService{parser: parser, store: store}, nil
}

// Ingest parses the documents and persists documents and nodes.
// Nodes are returned in document-submission order.
func (s *IngestService) Ingest(ctx context.Context, docs []domain.Document) ([]domain.Node, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	logger.Section("Ingest")
	logger.Debug("parsing %d documents", len(docs))

	nodes, err := s.parser.ParseAll(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("parsing documents: %w", err)
	}

	for i := range docs {
		if err := s.store.SaveDocument(ctx, &docs[i]); err != nil {
			return nil, fmt.Errorf("saving document %s: %w", docs[i].ID, err)
		}
	}
	if err := s.store.SaveNodes(ctx, nodes); err != nil {
		return nil, fmt.Errorf("saving nodes: %w", err)
	}

	logger.Info("ingested %d documents into %d nodes", len(docs), len(nodes))
	return nodes, nil
}
