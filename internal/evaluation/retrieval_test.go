package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

func TestEvaluate_Example(t *testing.T) {
	m, err := Evaluate([]string{"n3", "n1", "n5"}, []string{"n1"}, 3)
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.HitRate)
	assert.Equal(t, 0.5, m.MRR)
	assert.InDelta(t, 1.0/3.0, m.Precision, 1e-9)
}

func TestEvaluate_NoHit(t *testing.T) {
	m, err := Evaluate([]string{"n3", "n4", "n5"}, []string{"n1"}, 3)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.HitRate)
	assert.Equal(t, 0.0, m.MRR)
	assert.Equal(t, 0.0, m.Precision)
}

func TestEvaluate_FirstRank(t *testing.T) {
	m, err := Evaluate([]string{"n1", "n2"}, []string{"n1", "n2"}, 2)
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.HitRate)
	assert.Equal(t, 1.0, m.MRR)
	assert.Equal(t, 1.0, m.Precision)
}

func TestEvaluate_CutoffExcludesLaterHits(t *testing.T) {
	// The only relevant ID sits outside the top-2 cutoff.
	m, err := Evaluate([]string{"n9", "n8", "n1"}, []string{"n1"}, 2)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.HitRate)
	assert.Equal(t, 0.0, m.MRR)
	assert.Equal(t, 0.0, m.Precision)
}

func TestEvaluate_DefaultsToFullLength(t *testing.T) {
	m, err := Evaluate([]string{"n9", "n1"}, []string{"n1"}, 0)
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.HitRate)
	assert.Equal(t, 0.5, m.MRR)
	assert.Equal(t, 0.5, m.Precision)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	_, err := Evaluate([]string{"n1"}, nil, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Evaluate([]string{"n1"}, []string{"n1"}, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAggregate_Mean(t *testing.T) {
	records := []domain.EvalRecord{
		{Query: "q1", Retrieved: []string{"n1", "n2"}, Relevant: []string{"n1"}},
		{Query: "q2", Retrieved: []string{"n3", "n1"}, Relevant: []string{"n1"}},
	}

	summary, err := Aggregate(context.Background(), records, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Evaluated)
	assert.Equal(t, 0, summary.Excluded)
	assert.Equal(t, 1.0, summary.Metrics.HitRate)
	assert.InDelta(t, 0.75, summary.Metrics.MRR, 1e-9)    // (1 + 0.5) / 2
	assert.InDelta(t, 0.5, summary.Metrics.Precision, 1e-9) // (0.5 + 0.5) / 2
}

func TestAggregate_ExcludesEmptyGroundTruth(t *testing.T) {
	records := []domain.EvalRecord{
		{Query: "good", Retrieved: []string{"n1"}, Relevant: []string{"n1"}},
		{Query: "unlabelled", Retrieved: []string{"n2"}},
	}

	summary, err := Aggregate(context.Background(), records, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Evaluated)
	assert.Equal(t, 1, summary.Excluded)
	assert.Equal(t, 1.0, summary.Metrics.HitRate)
}

func TestAggregate_EmptyDataset(t *testing.T) {
	summary, err := Aggregate(context.Background(), nil, 5)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Evaluated)
	assert.Equal(t, domain.RetrievalMetrics{}, summary.Metrics)
}
