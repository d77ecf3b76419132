package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragpipe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/nodeparser"
	"github.com/custodia-labs/ragpipe/internal/splitter"
)

func newTestParser(t *testing.T) *nodeparser.Parser {
	t.Helper()
	s, err := splitter.NewSentenceSplitter(splitter.Config{ChunkSize: 64, ChunkOverlap: 8})
	require.NoError(t, err)
	p, err := nodeparser.New(s, nodeparser.DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestIngestService_Ingest(t *testing.T) {
	ctx := context.Background()
	store := memory.NewNodeStore()

	svc, err := NewIngestService(newTestParser(t), store)
	require.NoError(t, err)

	docs := []domain.Document{
		{ID: "doc-1", Text: "First sentence here. Second sentence here. Third sentence follows now."},
		{ID: "doc-2", Text: "Another document."},
	}

	nodes, err := svc.Ingest(ctx, docs)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	// Documents and nodes are persisted.
	doc, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, docs[0].Text, doc.Text)

	stored, err := store.GetNodes(ctx, "doc-1")
	require.NoError(t, err)
	assert.NotEmpty(t, stored)

	// Persisted nodes resolve their links through the store.
	for _, n := range stored {
		if n.NextID != "" {
			next, err := store.GetNode(ctx, n.NextID)
			require.NoError(t, err)
			assert.Equal(t, n.ID, next.PrevID)
		}
	}
}

func TestIngestService_Ingest_Empty(t *testing.T) {
	svc, err := NewIngestService(newTestParser(t), memory.NewNodeStore())
	require.NoError(t, err)

	nodes, err := svc.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestNewIngestService_Validation(t *testing.T) {
	_, err := NewIngestService(nil, memory.NewNodeStore())
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = NewIngestService(newTestParser(t), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
