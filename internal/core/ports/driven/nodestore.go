package driven

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// NodeStore persists nodes and resolves them by identifier.
// Prev/next relationships are stored as identifiers and resolved
// through GetNode, never as in-memory pointers.
type NodeStore interface {
	// SaveDocument stores or updates a source document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveNodes stores nodes for a document.
	SaveNodes(ctx context.Context, nodes []domain.Node) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetNode retrieves a node by ID.
	// Returns domain.ErrNotFound when the node does not exist.
	GetNode(ctx context.Context, id string) (*domain.Node, error)

	// GetNodes retrieves all nodes for a document in position order.
	GetNodes(ctx context.Context, documentID string) ([]domain.Node, error)

	// ListNodes returns every stored node. Order is unspecified.
	ListNodes(ctx context.Context) ([]domain.Node, error)

	// DeleteDocument removes a document and its nodes.
	DeleteDocument(ctx context.Context, id string) error
}
