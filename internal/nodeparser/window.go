package nodeparser

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/splitter"
)

// DefaultWindowSize is the number of sentences captured on each side of
// a sentence node.
const DefaultWindowSize = 3

// WindowParser is the sentence-window node parser: every sentence
// becomes its own node, and the concatenation of the surrounding
// sentences is recorded under domain.MetadataKeyWindow. The node text
// stays the single sentence, so embeddings see the sentence while a
// synthesizer can read the wider window.
type WindowParser struct {
	windowSize int
	opts       Options
}

// NewWindowParser creates a sentence-window parser.
// windowSize is the sentence count on each side; zero selects
// DefaultWindowSize, negative values are rejected.
func NewWindowParser(windowSize int, opts Options) (*WindowParser, error) {
	if windowSize < 0 {
		return nil, fmt.Errorf("%w: window size %d must not be negative", domain.ErrInvalidConfig, windowSize)
	}
	if windowSize == 0 {
		windowSize = DefaultWindowSize
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	return &WindowParser{windowSize: windowSize, opts: opts}, nil
}

// Parse builds one node per sentence with window metadata attached.
func (p *WindowParser) Parse(doc domain.Document) []domain.Node {
	sentences := splitter.SplitSentences(doc.Text)
	nodes := buildNodes(doc, sentences, p.opts)

	for i := range nodes {
		lo := i - p.windowSize
		if lo < 0 {
			lo = 0
		}
		hi := i + p.windowSize + 1
		if hi > len(nodes) {
			hi = len(nodes)
		}

		window := make([]string, 0, hi-lo)
		for j := lo; j < hi; j++ {
			window = append(window, nodes[j].Text)
		}

		if nodes[i].Metadata == nil {
			nodes[i].Metadata = make(map[string]any, 2)
		}
		nodes[i].Metadata[domain.MetadataKeyWindow] = strings.Join(window, " ")
		nodes[i].Metadata[domain.MetadataKeyOriginalText] = nodes[i].Text
	}
	return nodes
}

// ParseAll builds window nodes for many documents in parallel,
// merging results in submission order.
func (p *WindowParser) ParseAll(ctx context.Context, docs []domain.Document) ([]domain.Node, error) {
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
