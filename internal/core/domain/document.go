package domain

import "time"

// Document represents a raw unit of text plus free-form metadata.
// It is immutable after creation: the node parser consumes it once
// and never writes back.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Text is the full raw text content.
	Text string `json:"text"`

	// Metadata contains arbitrary key-value pairs (source, author,
	// timestamp, ...). Nodes inherit these unless configured otherwise.
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt is when the document entered the corpus.
	CreatedAt time.Time `json:"created_at"`
}

// RelationDirection selects which neighbour links to follow.
type RelationDirection string

const (
	// DirectionPrevious walks PrevID links only.
	DirectionPrevious RelationDirection = "previous"

	// DirectionNext walks NextID links only.
	DirectionNext RelationDirection = "next"

	// DirectionBoth walks links in both directions.
	DirectionBoth RelationDirection = "both"

	// DirectionNone performs no expansion.
	DirectionNone RelationDirection = "none"
)

// Node represents a bounded chunk of text derived from a Document.
// It is the atomic unit of retrieval.
type Node struct {
	// ID is the unique identifier for the node. IDs derived by the
	// node parser are stable across re-runs on unchanged input.
	ID string `json:"id"`

	// DocumentID links to the Document this node was cut from.
	// Empty for synthesized nodes.
	DocumentID string `json:"document_id,omitempty"`

	// Text is the chunk content. Non-empty after trimming.
	Text string `json:"text"`

	// Metadata contains node key-value pairs, typically inherited
	// from the source document. Sentence-window parsing adds the
	// MetadataKeyWindow and MetadataKeyOriginalText entries here.
	Metadata map[string]any `json:"metadata,omitempty"`

	// PrevID and NextID are non-owning back-references to adjacent
	// nodes from the same document. They are identifiers resolved
	// through the NodeStore, never in-memory pointers, so nodes can
	// be stored and fetched independently. Empty at chain boundaries.
	PrevID string `json:"prev_id,omitempty"`
	NextID string `json:"next_id,omitempty"`

	// Position is the ordinal position within the source document.
	Position int `json:"position"`
}

// Metadata keys written by the sentence-window node parser.
const (
	// MetadataKeyWindow holds the surrounding-context string for a
	// sentence node. It is descriptive metadata: the node's Text stays
	// the single sentence used for embedding.
	MetadataKeyWindow = "window"

	// MetadataKeyOriginalText holds the sentence itself, preserved so
	// downstream consumers can swap Text for the window and back.
	MetadataKeyOriginalText = "original_text"
)

// ScoredNode pairs a Node with an optional retrieval score.
// A nil Score means the retriever did not score this node; it is not
// the same as a score of zero.
type ScoredNode struct {
	// Node is the candidate node.
	Node Node `json:"node"`

	// Score is the relevance score assigned at retrieval time.
	// Only scoring stages may replace it.
	Score *float64 `json:"score,omitempty"`
}

// NewScoredNode builds a scored candidate.
func NewScoredNode(node Node, score float64) ScoredNode {
	return ScoredNode{Node: node, Score: &score}
}

// ScoreOr returns the score, or def when the node is unscored.
func (s ScoredNode) ScoreOr(def float64) float64 {
	if s.Score == nil {
		return def
	}
	return *s.Score
}

// Query carries the query-time context through the postprocessor chain.
type Query struct {
	// Text is the raw query string.
	Text string `json:"text"`

	// Time is the query timestamp used for recency decay.
	// Zero means unknown; recency stages fall back to the newest
	// candidate timestamp, then to the clock.
	Time time.Time

	// Embedding is the query vector, when upstream retrieval
	// already computed it. May be nil.
	Embedding []float32
}
