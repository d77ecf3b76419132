package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragpipe/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ragpipe/internal/core/services"
	"github.com/custodia-labs/ragpipe/internal/nodeparser"
	"github.com/custodia-labs/ragpipe/internal/splitter"
)

// setupTestServices wires in-memory services and returns a cleanup
// function restoring the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	prevIngest := ingestService
	prevQuery := queryService
	prevIndexer := queryIndexer
	prevEval := evalService

	s, err := splitter.NewSentenceSplitter(splitter.Config{ChunkSize: 128, ChunkOverlap: 16})
	require.NoError(t, err)
	parser, err := nodeparser.New(s, nodeparser.DefaultOptions())
	require.NoError(t, err)

	store := memory.NewNodeStore()
	ingest, err := services.NewIngestService(parser, store)
	require.NoError(t, err)

	SetIngestService(ingest)
	SetQueryService(nil, nil)
	SetEvalService(services.NewEvalService())

	return func() {
		ingestService = prevIngest
		queryService = prevQuery
		queryIndexer = prevIndexer
		evalService = prevEval
	}
}
