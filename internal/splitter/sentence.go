package splitter

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// Default configuration values.
const (
	DefaultChunkSize    = 1024
	DefaultChunkOverlap = 200

	// DefaultParagraphSeparator splits text into paragraphs before any
	// finer-grained segmentation is attempted.
	DefaultParagraphSeparator = "\n\n"
)

// Config holds configuration for the sentence splitter.
// Invalid combinations are rejected at construction, not at first use.
type Config struct {
	// ChunkSize is the maximum chunk length in measurement units.
	ChunkSize int

	// ChunkOverlap is the amount of trailing text re-included at the
	// start of the next chunk, in the same units as ChunkSize.
	ChunkOverlap int

	// ParagraphSeparator splits text into paragraphs
	// (default: "\n\n").
	ParagraphSeparator string

	// Measure selects the budget unit (default: Runes).
	Measure Measure
}

// SentenceSplitter splits prose into bounded, overlapping chunks with a
// preference for complete paragraphs and sentences. Fallback
// granularity: paragraphs, then sentences, then words, then raw
// character runs when a single word exceeds the budget.
type SentenceSplitter struct {
	chunkSize    int
	chunkOverlap int
	paragraphSep string
	measure      Measure
}

// NewSentenceSplitter creates a sentence splitter from cfg.
// Returns domain.ErrInvalidConfig when ChunkSize or ChunkOverlap is
// non-positive (overlap may be zero) or overlap >= size.
func NewSentenceSplitter(cfg Config) (*SentenceSplitter, error) {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
		if cfg.ChunkOverlap == 0 {
			cfg.ChunkOverlap = DefaultChunkOverlap
		}
	}
	if cfg.ParagraphSeparator == "" {
		cfg.ParagraphSeparator = DefaultParagraphSeparator
	}
	if cfg.Measure == nil {
		cfg.Measure = Runes()
	}

	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidConfig, cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap %d must not be negative", domain.ErrInvalidConfig, cfg.ChunkOverlap)
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidConfig, cfg.ChunkOverlap, cfg.ChunkSize)
	}

	return &SentenceSplitter{
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
		paragraphSep: cfg.ParagraphSeparator,
		measure:      cfg.Measure,
	}, nil
}

// Split cuts text into chunks of at most ChunkSize units, consecutive
// chunks sharing ChunkOverlap units of trailing text. Whitespace-only
// input yields zero chunks. Text that already fits the budget comes
// back as a single trimmed chunk.
func (s *SentenceSplitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if s.measure.Count(text) <= s.chunkSize {
		return []string{text}
	}

	units := s.split(text)
	return s.merge(units)
}

// split breaks text into units no longer than the chunk budget.
// Granularity order: paragraphs, sentences, words, character runs.
func (s *SentenceSplitter) split(text string) []string {
	var units []string
	for _, para := range strings.Split(text, s.paragraphSep) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if s.measure.Count(para) <= s.chunkSize {
			units = append(units, para)
			continue
		}
		for _, sent := range SplitSentences(para) {
			if s.measure.Count(sent) <= s.chunkSize {
				units = append(units, sent)
				continue
			}
			for _, word := range strings.Fields(sent) {
				if s.measure.Count(word) <= s.chunkSize {
					units = append(units, word)
					continue
				}
				// Hard cap: a single unit exceeds the budget.
				units = append(units, s.measure.Cut(word, s.chunkSize)...)
			}
		}
	}
	return units
}

// merge greedily accumulates units into chunks, seeding each new chunk
// with the trailing overlap of the one just emitted. The overlap
// shrinks only when re-including it would push the chunk past the hard
// cap.
func (s *SentenceSplitter) merge(units []string) []string {
	var chunks []string
	cur := ""

	for _, unit := range units {
		if cur == "" {
			cur = unit
			continue
		}
		joined := cur + " " + unit
		if s.measure.Count(joined) <= s.chunkSize {
			cur = joined
			continue
		}

		chunks = append(chunks, cur)

		overlap := s.overlapFor(cur, unit)
		if overlap == "" {
			cur = unit
		} else {
			cur = overlap + " " + unit
		}
	}

	if strings.TrimSpace(cur) != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// overlapFor returns the tail of the previous chunk to seed the next
// one with, reduced when the full overlap plus the incoming unit would
// exceed the chunk budget.
func (s *SentenceSplitter) overlapFor(prev, next string) string {
	if s.chunkOverlap == 0 {
		return ""
	}
	want := s.chunkOverlap
	// Budget left for the overlap once the incoming unit and the
	// joining space are accounted for.
	room := s.chunkSize - s.measure.Count(next) - 1
	if room < want {
		want = room
	}
	if want <= 0 {
		return ""
	}
	return s.measure.Tail(prev, want)
}
