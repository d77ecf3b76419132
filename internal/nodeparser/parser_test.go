package nodeparser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/splitter"
)

func newTestParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	s, err := splitter.NewSentenceSplitter(splitter.Config{ChunkSize: 40, ChunkOverlap: 5})
	require.NoError(t, err)
	p, err := New(s, opts)
	require.NoError(t, err)
	return p
}

func TestNew_RequiresSplitter(t *testing.T) {
	_, err := New(nil, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestParser_Parse_Linkage(t *testing.T) {
	p := newTestParser(t, DefaultOptions())

	doc := domain.Document{
		ID:   "doc-1",
		Text: "First sentence goes here. Second sentence goes here. Third sentence goes here.",
	}
	nodes := p.Parse(doc)
	require.Greater(t, len(nodes), 1)

	for i := range nodes {
		if i == 0 {
			assert.Empty(t, nodes[i].PrevID, "first node must have no previous link")
		} else {
			assert.Equal(t, nodes[i-1].ID, nodes[i].PrevID)
			assert.Equal(t, nodes[i].ID, nodes[i-1].NextID)
		}
	}
	assert.Empty(t, nodes[len(nodes)-1].NextID, "last node must have no next link")
}

func TestParser_Parse_DeterministicIDs(t *testing.T) {
	p := newTestParser(t, DefaultOptions())

	doc := domain.Document{ID: "doc-1", Text: "Alpha sentence here. Beta sentence here. Gamma sentence here."}
	first := p.Parse(doc)
	second := p.Parse(doc)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}

	// Different documents never share node IDs.
	other := p.Parse(domain.Document{ID: "doc-2", Text: doc.Text})
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

func TestParser_Parse_Metadata(t *testing.T) {
	doc := domain.Document{
		ID:       "doc-1",
		Text:     "Some text to wrap into a node.",
		Metadata: map[string]any{"source": "unit", "author": "jo"},
	}

	withMeta := newTestParser(t, DefaultOptions()).Parse(doc)
	require.NotEmpty(t, withMeta)
	assert.Equal(t, "unit", withMeta[0].Metadata["source"])
	assert.Equal(t, "jo", withMeta[0].Metadata["author"])

	// Node metadata is a copy, not an alias.
	withMeta[0].Metadata["source"] = "changed"
	assert.Equal(t, "unit", doc.Metadata["source"])

	opts := DefaultOptions()
	opts.IncludeMetadata = false
	without := newTestParser(t, opts).Parse(doc)
	require.NotEmpty(t, without)
	assert.Nil(t, without[0].Metadata)
}

func TestParser_Parse_NoLinksWhenDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludePrevNextRel = false
	p := newTestParser(t, opts)

	nodes := p.Parse(domain.Document{
		ID:   "doc-1",
		Text: "First sentence goes here. Second sentence goes here. Third sentence goes here.",
	})
	require.Greater(t, len(nodes), 1)
	for _, n := range nodes {
		assert.Empty(t, n.PrevID)
		assert.Empty(t, n.NextID)
	}
}

func TestParser_Parse_EmptyDocument(t *testing.T) {
	p := newTestParser(t, DefaultOptions())
	assert.Empty(t, p.Parse(domain.Document{ID: "doc-1", Text: "   "}))
}

func TestParser_ParseAll_SubmissionOrder(t *testing.T) {
	p := newTestParser(t, DefaultOptions())

	var docs []domain.Document
	for i := 0; i < 10; i++ {
		docs = append(docs, domain.Document{
			ID:   fmt.Sprintf("doc-%d", i),
			Text: fmt.Sprintf("Document number %d first sentence. Document number %d second sentence.", i, i),
		})
	}

	nodes, err := p.ParseAll(context.Background(), docs)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	// Nodes appear grouped by document, in submission order.
	seen := -1
	for _, n := range nodes {
		var idx int
		_, err := fmt.Sscanf(n.DocumentID, "doc-%d", &idx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, seen)
		seen = idx
	}
}

func TestWindowParser_Windows(t *testing.T) {
	p, err := NewWindowParser(1, DefaultOptions())
	require.NoError(t, err)

	doc := domain.Document{ID: "doc-1", Text: "One is first. Two is second. Three is third. Four is fourth."}
	nodes := p.Parse(doc)
	require.Len(t, nodes, 4)

	// Node text stays the single sentence.
	assert.Equal(t, "One is first.", nodes[0].Text)
	assert.Equal(t, "One is first.", nodes[0].Metadata[domain.MetadataKeyOriginalText])

	// One sentence each side, clipped at document boundaries.
	assert.Equal(t, "One is first. Two is second.", nodes[0].Metadata[domain.MetadataKeyWindow])
	assert.Equal(t, "One is first. Two is second. Three is third.", nodes[1].Metadata[domain.MetadataKeyWindow])
	assert.Equal(t, "Three is third. Four is fourth.", nodes[3].Metadata[domain.MetadataKeyWindow])
}

func TestWindowParser_Linkage(t *testing.T) {
	p, err := NewWindowParser(2, DefaultOptions())
	require.NoError(t, err)

	nodes := p.Parse(domain.Document{ID: "doc-1", Text: "A one. B two. C three."})
	require.Len(t, nodes, 3)
	assert.Equal(t, nodes[0].ID, nodes[1].PrevID)
	assert.Equal(t, nodes[2].ID, nodes[1].NextID)
}

func TestWindowParser_RejectsNegativeWindow(t *testing.T) {
	_, err := NewWindowParser(-1, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNodeID_Stable(t *testing.T) {
	a := NodeID("doc-1", 0)
	b := NodeID("doc-1", 0)
	c := NodeID("doc-1", 1)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, strings.Contains(a, " "))
}
