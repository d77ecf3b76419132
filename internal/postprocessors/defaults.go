package postprocessors

import (
	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/core/ports/driven"
	"github.com/custodia-labs/ragpipe/internal/postprocessors/keyword"
	"github.com/custodia-labs/ragpipe/internal/postprocessors/neighbor"
	"github.com/custodia-labs/ragpipe/internal/postprocessors/recency"
	"github.com/custodia-labs/ragpipe/internal/postprocessors/similarity"
)

// Deps carries the external collaborators built-in stages may need.
// Store is required by the neighbour expanders; Embedder by the
// embedding-aware recency stage; Clock is optional everywhere.
type Deps struct {
	Store    driven.NodeStore
	Embedder driven.EmbeddingService
	Clock    driven.Clock
}

// RegisterDefaults registers all built-in stages with the registry.
// Call this during application initialisation to enable standard stages.
func RegisterDefaults(r *Registry, deps Deps) {
	r.Register("keyword", buildKeyword)
	r.Register("similarity", buildSimilarity)
	r.Register("fixed_recency", buildFixedRecency)
	r.Register("time_weighted_recency", func(cfg map[string]any) (driven.NodePostprocessor, error) {
		return buildTimeWeighted(cfg, deps.Clock)
	})
	r.Register("embedding_recency", func(cfg map[string]any) (driven.NodePostprocessor, error) {
		return buildEmbeddingRecency(cfg, deps.Embedder)
	})
	r.Register("prev_next", func(cfg map[string]any) (driven.NodePostprocessor, error) {
		return buildPrevNext(cfg, deps.Store)
	})
	r.Register("auto_prev_next", func(cfg map[string]any) (driven.NodePostprocessor, error) {
		return buildAutoPrevNext(cfg, deps.Store)
	})
}

// buildKeyword creates a keyword filter from generic config.
// Supported config keys:
//   - required_keywords ([]string): keep candidates containing any of these
//   - exclude_keywords ([]string): drop candidates containing any of these
func buildKeyword(cfg map[string]any) (driven.NodePostprocessor, error) {
	var opts []keyword.Option
	if kws := getStringsFromConfig(cfg, "required_keywords"); len(kws) > 0 {
		opts = append(opts, keyword.WithRequired(kws...))
	}
	if kws := getStringsFromConfig(cfg, "exclude_keywords"); len(kws) > 0 {
		opts = append(opts, keyword.WithExcluded(kws...))
	}
	return keyword.New(opts...), nil
}

// buildSimilarity creates a similarity cutoff from generic config.
// Supported config keys:
//   - similarity_cutoff (float): minimum score to keep
//   - strict_scoring (bool): error on unscored candidates
func buildSimilarity(cfg map[string]any) (driven.NodePostprocessor, error) {
	opts := []similarity.Option{
		similarity.WithCutoff(getFloatFromConfig(cfg, "similarity_cutoff")),
	}
	if getBoolFromConfig(cfg, "strict_scoring") {
		opts = append(opts, similarity.WithStrictScoring())
	}
	return similarity.New(opts...), nil
}

func buildFixedRecency(cfg map[string]any) (driven.NodePostprocessor, error) {
	return recency.NewFixed(recency.FixedConfig{
		TopK:          getIntFromConfig(cfg, "top_k"),
		DateKey:       getStringFromConfig(cfg, "date_key"),
		FailOnMissing: getBoolFromConfig(cfg, "fail_on_missing"),
	})
}

func buildTimeWeighted(cfg map[string]any, clock driven.Clock) (driven.NodePostprocessor, error) {
	return recency.NewTimeWeighted(recency.TimeWeightedConfig{
		TimeDecay:     getFloatFromConfig(cfg, "time_decay"),
		DateKey:       getStringFromConfig(cfg, "date_key"),
		FailOnMissing: getBoolFromConfig(cfg, "fail_on_missing"),
		Clock:         clock,
	})
}

func buildEmbeddingRecency(cfg map[string]any, embedder driven.EmbeddingService) (driven.NodePostprocessor, error) {
	return recency.NewEmbedding(recency.EmbeddingConfig{
		Embedder:         embedder,
		SimilarityCutoff: getFloatFromConfig(cfg, "similarity_cutoff"),
		DateKey:          getStringFromConfig(cfg, "date_key"),
		FailOnMissing:    getBoolFromConfig(cfg, "fail_on_missing"),
	})
}

func buildPrevNext(cfg map[string]any, store driven.NodeStore) (driven.NodePostprocessor, error) {
	return neighbor.New(neighbor.Config{
		Store:    store,
		NumNodes: getIntFromConfig(cfg, "num_nodes"),
		Mode:     domain.RelationDirection(getStringFromConfig(cfg, "mode")),
	})
}

func buildAutoPrevNext(cfg map[string]any, store driven.NodeStore) (driven.NodePostprocessor, error) {
	return neighbor.NewAuto(neighbor.Config{
		Store:    store,
		NumNodes: getIntFromConfig(cfg, "num_nodes"),
	})
}

// getIntFromConfig safely extracts an int from generic config.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func getFloatFromConfig(cfg map[string]any, key string) float64 {
	val, ok := cfg[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func getStringFromConfig(cfg map[string]any, key string) string {
	val, ok := cfg[key]
	if !ok {
		return ""
	}
	s, _ := val.(string)
	return s
}

func getBoolFromConfig(cfg map[string]any, key string) bool {
	val, ok := cfg[key]
	if !ok {
		return false
	}
	b, _ := val.(bool)
	return b
}

// getStringsFromConfig extracts a string slice, tolerating the []any
// representation TOML and JSON decoders produce.
func getStringsFromConfig(cfg map[string]any, key string) []string {
	val, ok := cfg[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
