package nodeparser

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// DefaultParallelism bounds the number of documents parsed concurrently.
const DefaultParallelism = 4

// Splitter cuts raw text into ordered chunks.
// Implemented by splitter.SentenceSplitter and splitter.CodeSplitter.
type Splitter interface {
	Split(text string) []string
}

// Options configures node construction.
type Options struct {
	// IncludeMetadata copies document metadata onto every node
	// (default: true).
	IncludeMetadata bool

	// IncludePrevNextRel links adjacent nodes from the same document
	// through prev/next identifiers (default: true).
	IncludePrevNextRel bool

	// Parallelism bounds concurrent document parsing
	// (default: DefaultParallelism).
	Parallelism int
}

// DefaultOptions returns the standard node construction options.
func DefaultOptions() Options {
	return Options{
		IncludeMetadata:    true,
		IncludePrevNextRel: true,
		Parallelism:        DefaultParallelism,
	}
}

// Parser builds nodes from documents using a Splitter.
type Parser struct {
	splitter Splitter
	opts     Options
}

// New creates a parser around the given splitter.
func New(s Splitter, opts Options) (*Parser, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: splitter is required", domain.ErrInvalidConfig)
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	return &Parser{splitter: s, opts: opts}, nil
}

// Parse builds the ordered node sequence for a single document.
func (p *Parser) Parse(doc domain.Document) []domain.Node {
	chunks := p.splitter.Split(doc.Text)
	return buildNodes(doc, chunks, p.opts)
}

// ParseAll builds nodes for many documents, parsing independent
// documents in parallel and merging results in submission order.
func (p *Parser) ParseAll(ctx context.Context, docs []domain.Document) ([]domain.Node, error) {
	perDoc := make([][]domain.Node, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Parallelism)

	for i := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perDoc[i] = p.Parse(docs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var nodes []domain.Node
	for _, n := range perDoc {
		nodes = append(nodes, n...)
	}
	return nodes, nil
}

// buildNodes wraps chunks into nodes, assigning deterministic IDs and
// optional prev/next links. Blank chunks are skipped.
func buildNodes(doc domain.Document, chunks []string, opts Options) []domain.Node {
	nodes := make([]domain.Node, 0, len(chunks))

	for _, chunk := range chunks {
		text := strings.TrimSpace(chunk)
		if text == "" {
			continue
		}

		node := domain.Node{
			ID:         NodeID(doc.ID, len(nodes)),
			DocumentID: doc.ID,
			Text:       text,
			Position:   len(nodes),
		}
		if opts.IncludeMetadata {
			node.Metadata = copyMetadata(doc.Metadata)
		}
		nodes = append(nodes, node)
	}

	if opts.IncludePrevNextRel {
		linkNodes(nodes)
	}
	return nodes
}

// linkNodes wires symmetric prev/next identifiers across an ordered
// node slice. First and last nodes keep unset boundary links.
func linkNodes(nodes []domain.Node) {
	for i := range nodes {
		if i > 0 {
			nodes[i].PrevID = nodes[i-1].ID
		}
		if i < len(nodes)-1 {
			nodes[i].NextID = nodes[i+1].ID
		}
	}
}

// NodeID derives a stable node identifier from the document identity
// and the chunk position. UUIDv5 keeps it deterministic across re-runs
// on unchanged input.
func NodeID(documentID string, position int) string {
	name := fmt.Sprintf("%s#%d", documentID, position)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func copyMetadata(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
