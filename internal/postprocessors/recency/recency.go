// Package recency provides time-aware candidate rescoring and
// filtering. All stages here require each candidate to carry a
// parseable timestamp in node metadata.
package recency

import (
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// DefaultDateKey is the metadata key holding the node timestamp.
const DefaultDateKey = "date"

// timestampFormats are tried in order when the metadata value is a string.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// nodeTime extracts the timestamp from node metadata under key.
// Accepts time.Time values and the string formats above.
// Returns domain.ErrMissingTimestamp when absent or unparseable.
func nodeTime(node domain.Node, key string) (time.Time, error) {
	raw, ok := node.Metadata[key]
	if !ok {
		return time.Time{}, fmt.Errorf("node %s: metadata key %q: %w", node.ID, key, domain.ErrMissingTimestamp)
	}

	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, format := range timestampFormats {
			if t, err := time.Parse(format, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("node %s: unparseable timestamp %q: %w", node.ID, v, domain.ErrMissingTimestamp)
	default:
		return time.Time{}, fmt.Errorf("node %s: timestamp has type %T: %w", node.ID, raw, domain.ErrMissingTimestamp)
	}
}

// datedNode pairs a candidate with its extracted timestamp.
type datedNode struct {
	candidate domain.ScoredNode
	at        time.Time
}

// extractTimes resolves every candidate's timestamp. With failOnMissing
// unset, candidates without one are dropped with a warning; otherwise
// the first gap fails the whole call.
func extractTimes(candidates []domain.ScoredNode, key string, failOnMissing bool) ([]datedNode, error) {
	dated := make([]datedNode, 0, len(candidates))
	for _, c := range candidates {
		at, err := nodeTime(c.Node, key)
		if err != nil {
			if failOnMissing {
				return nil, err
			}
			logger.Warn("recency: dropping candidate: %v", err)
			continue
		}
		dated = append(dated, datedNode{candidate: c, at: at})
	}
	return dated, nil
}

// sortNewestFirst orders candidates by timestamp descending, breaking
// date ties by original score descending. Unscored candidates sort
// after scored ones on a tie. The sort is stable so equal candidates
// keep their incoming order.
func sortNewestFirst(dated []datedNode) {
	sort.SliceStable(dated, func(i, j int) bool {
		if !dated[i].at.Equal(dated[j].at) {
			return dated[i].at.After(dated[j].at)
		}
		si, sj := dated[i].candidate.Score, dated[j].candidate.Score
		switch {
		case si != nil && sj != nil:
			return *si > *sj
		case si != nil:
			return true
		default:
			return false
		}
	})
}
