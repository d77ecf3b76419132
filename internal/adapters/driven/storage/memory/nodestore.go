// Package memory provides in-memory implementations of the storage
// ports, used for tests and for corpora that fit in RAM.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
)

// Ensure NodeStore implements the interface.
var _ driven.NodeStore = (*NodeStore)(nil)

// NodeStore is an in-memory implementation of driven.NodeStore.
// Safe for concurrent use: queries read the corpus while ingestion
// writes it under the lock.
type NodeStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	nodes     map[string]domain.Node
	byDoc     map[string][]string
}

// NewNodeStore creates a new in-memory node store.
func NewNodeStore() *NodeStore {
	return &NodeStore{
		documents: make(map[string]domain.Document),
		nodes:     make(map[string]domain.Node),
		byDoc:     make(map[string][]string),
	}
}

// SaveDocument stores or updates a source document.
func (s *NodeStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// SaveNodes stores nodes, replacing any previous set for the same
// documents.
func (s *NodeStore) SaveNodes(_ context.Context, nodes []domain.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, node := range nodes {
		if _, exists := s.nodes[node.ID]; !exists {
			s.byDoc[node.DocumentID] = append(s.byDoc[node.DocumentID], node.ID)
		}
		s.nodes[node.ID] = node
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *NodeStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetNode retrieves a node by ID.
func (s *NodeStore) GetNode(_ context.Context, id string) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.nodes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &node, nil
}

// GetNodes retrieves all nodes for a document in position order.
func (s *NodeStore) GetNodes(_ context.Context, documentID string) ([]domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.byDoc[documentID]
	if !ok {
		return nil, nil
	}
	nodes := make([]domain.Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, s.nodes[id])
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Position < nodes[j].Position
	})
	return nodes, nil
}

// ListNodes returns every stored node.
func (s *NodeStore) ListNodes(_ context.Context) ([]domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes := make([]domain.Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// DeleteDocument removes a document and its nodes.
func (s *NodeStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	for _, nodeID := range s.byDoc[id] {
		delete(s.nodes, nodeID)
	}
	delete(s.byDoc, id)
	return nil
}
