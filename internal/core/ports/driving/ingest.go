package driving

import (
	"context"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// IngestService builds the node corpus from raw documents.
type IngestService interface {
	// Ingest parses documents into nodes and persists them.
	// Independent documents are parsed in parallel; the returned nodes
	// are merged in document-submission order.
	Ingest(ctx context.Context, docs []domain.Document) ([]domain.Node, error)
}
