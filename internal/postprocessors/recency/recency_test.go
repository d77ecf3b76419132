package recency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// datedCandidate builds a scored node with a timestamp hoursAgo before
// baseTime.
func datedCandidate(id string, score float64, hoursAgo float64) domain.ScoredNode {
	at := baseTime.Add(-time.Duration(hoursAgo * float64(time.Hour)))
	return domain.NewScoredNode(domain.Node{
		ID:       id,
		Text:     "text of " + id,
		Metadata: map[string]any{"date": at},
	}, score)
}

func TestNodeTime_Formats(t *testing.T) {
	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{"time value", baseTime, true},
		{"rfc3339", "2024-03-01T12:00:00Z", true},
		{"datetime", "2024-03-01 12:00:00", true},
		{"date only", "2024-03-01", true},
		{"garbage", "not a date", false},
		{"wrong type", 1234, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := domain.Node{ID: "n", Metadata: map[string]any{"date": tt.value}}
			_, err := nodeTime(node, "date")
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrMissingTimestamp)
			}
		})
	}
}

func TestFixed_KeepsMostRecent(t *testing.T) {
	p, err := NewFixed(FixedConfig{TopK: 2})
	require.NoError(t, err)

	in := []domain.ScoredNode{
		datedCandidate("old", 0.9, 48),
		datedCandidate("newest", 0.1, 1),
		datedCandidate("mid", 0.5, 24),
	}
	out, err := p.Process(context.Background(), domain.Query{}, in)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "newest", out[0].Node.ID)
	assert.Equal(t, "mid", out[1].Node.ID)
}

func TestFixed_DateTiesBreakByScore(t *testing.T) {
	p, err := NewFixed(FixedConfig{TopK: 2})
	require.NoError(t, err)

	in := []domain.ScoredNode{
		datedCandidate("weak", 0.2, 5),
		datedCandidate("strong", 0.8, 5),
	}
	out, err := p.Process(context.Background(), domain.Query{}, in)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "strong", out[0].Node.ID)
}

func TestFixed_MissingTimestamp_Dropped(t *testing.T) {
	p, err := NewFixed(FixedConfig{TopK: 5})
	require.NoError(t, err)

	in := []domain.ScoredNode{
		datedCandidate("dated", 0.9, 1),
		domain.NewScoredNode(domain.Node{ID: "undated"}, 0.8),
	}
	out, err := p.Process(context.Background(), domain.Query{}, in)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "dated", out[0].Node.ID)
}

func TestFixed_MissingTimestamp_Strict(t *testing.T) {
	p, err := NewFixed(FixedConfig{TopK: 5, FailOnMissing: true})
	require.NoError(t, err)

	in := []domain.ScoredNode{domain.NewScoredNode(domain.Node{ID: "undated"}, 0.8)}
	_, err = p.Process(context.Background(), domain.Query{}, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingTimestamp)
}

func TestTimeWeighted_DecayValidation(t *testing.T) {
	for _, decay := range []float64{-0.1, 1, 1.5} {
		_, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: decay})
		assert.ErrorIs(t, err, domain.ErrInvalidConfig, "decay %g", decay)
	}
	_, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: 0})
	assert.NoError(t, err)
}

func TestTimeWeighted_Boost(t *testing.T) {
	p, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: 0.5})
	require.NoError(t, err)

	in := []domain.ScoredNode{datedCandidate("two-hours", 0.4, 2)}
	out, err := p.Process(context.Background(), domain.Query{Time: baseTime}, in)
	require.NoError(t, err)

	// 0.4 + 0.5^2 = 0.65
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Score)
	assert.InDelta(t, 0.65, *out[0].Score, 1e-9)
}

func TestTimeWeighted_ZeroDecay_ConstantBoost(t *testing.T) {
	p, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: 0})
	require.NoError(t, err)

	in := []domain.ScoredNode{
		datedCandidate("fresh", 0.4, 1),
		datedCandidate("ancient", 0.4, 10000),
	}
	out, err := p.Process(context.Background(), domain.Query{Time: baseTime}, in)
	require.NoError(t, err)

	require.Len(t, out, 2)
	for _, c := range out {
		require.NotNil(t, c.Score)
		assert.InDelta(t, 1.4, *c.Score, 1e-9)
	}
}

func TestTimeWeighted_ReordersByNewScore(t *testing.T) {
	p, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: 0.5})
	require.NoError(t, err)

	// The fresher candidate's boost overcomes its lower base score.
	in := []domain.ScoredNode{
		datedCandidate("stale-strong", 0.6, 10), // 0.6 + ~0.001
		datedCandidate("fresh-weak", 0.3, 0),    // 0.3 + 1
	}
	out, err := p.Process(context.Background(), domain.Query{Time: baseTime}, in)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "fresh-weak", out[0].Node.ID)
}

func TestTimeWeighted_FallsBackToBatchMax(t *testing.T) {
	p, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: 0.5})
	require.NoError(t, err)

	// No query time and no clock: ages are measured against the newest
	// candidate, which therefore gets the full boost of 1.
	in := []domain.ScoredNode{
		datedCandidate("newest", 0.0, 1),
		datedCandidate("older", 0.0, 3),
	}
	out, err := p.Process(context.Background(), domain.Query{}, in)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "newest", out[0].Node.ID)
	assert.InDelta(t, 1.0, *out[0].Score, 1e-9)
	assert.InDelta(t, 0.25, *out[1].Score, 1e-9) // 0.5^2 over the 2h gap
}

func TestTimeWeighted_UsesClock(t *testing.T) {
	clock := driven.ClockFunc(func() time.Time { return baseTime })
	p, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: 0.5, Clock: clock})
	require.NoError(t, err)

	in := []domain.ScoredNode{datedCandidate("two-hours", 0.0, 2)}
	out, err := p.Process(context.Background(), domain.Query{}, in)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.InDelta(t, 0.25, *out[0].Score, 1e-9)
}

func TestTimeWeighted_UnscoredDropped(t *testing.T) {
	p, err := NewTimeWeighted(TimeWeightedConfig{TimeDecay: 0.5})
	require.NoError(t, err)

	unscored := domain.ScoredNode{Node: domain.Node{
		ID:       "unscored",
		Metadata: map[string]any{"date": baseTime},
	}}
	out, err := p.Process(context.Background(), domain.Query{Time: baseTime},
		[]domain.ScoredNode{unscored, datedCandidate("scored", 0.5, 1)})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "scored", out[0].Node.ID)
}
