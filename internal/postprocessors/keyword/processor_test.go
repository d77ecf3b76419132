package keyword

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

func candidates(texts ...string) []domain.ScoredNode {
	out := make([]domain.ScoredNode, 0, len(texts))
	for i, text := range texts {
		out = append(out, domain.NewScoredNode(domain.Node{
			ID:   texts[i],
			Text: text,
		}, 1.0))
	}
	return out
}

func ids(nodes []domain.ScoredNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Node.ID)
	}
	return out
}

func TestProcessor_RequiredKeywords(t *testing.T) {
	p := New(WithRequired("fox"))

	out, err := p.Process(context.Background(), domain.Query{}, candidates("alpha fox", "beta dog"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha fox"}, ids(out))
}

func TestProcessor_ExcludedKeywords(t *testing.T) {
	p := New(WithExcluded("dog"))

	out, err := p.Process(context.Background(), domain.Query{}, candidates("alpha fox", "beta dog"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha fox"}, ids(out))
}

func TestProcessor_ExcludedBeatsRequired(t *testing.T) {
	p := New(WithRequired("fox"), WithExcluded("beta"))

	out, err := p.Process(context.Background(), domain.Query{},
		candidates("alpha fox", "beta fox", "gamma dog"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha fox"}, ids(out))
}

func TestProcessor_CaseInsensitive(t *testing.T) {
	p := New(WithRequired("FOX"))

	out, err := p.Process(context.Background(), domain.Query{}, candidates("the Fox ran", "no match"))
	require.NoError(t, err)
	assert.Equal(t, []string{"the Fox ran"}, ids(out))
}

func TestProcessor_NoKeywords_IsNoop(t *testing.T) {
	p := New()

	in := candidates("anything", "at all")
	out, err := p.Process(context.Background(), domain.Query{}, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestProcessor_EmptyInput(t *testing.T) {
	p := New(WithRequired("fox"))

	out, err := p.Process(context.Background(), domain.Query{}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
