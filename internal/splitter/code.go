package splitter

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// Default configuration values for code splitting.
const (
	DefaultChunkLines        = 40
	DefaultChunkLinesOverlap = 15
	DefaultMaxChars          = 1500
)

// CodeConfig holds configuration for the code splitter.
type CodeConfig struct {
	// ChunkLines is the maximum lines per chunk.
	ChunkLines int

	// ChunkLinesOverlap is the number of trailing lines re-included at
	// the start of the next chunk.
	ChunkLinesOverlap int

	// MaxChars caps the chunk size in characters regardless of line
	// count, so files with very long lines stay bounded.
	MaxChars int
}

// CodeSplitter splits structured text (source code) along line
// boundaries, preferring to cut at blank lines or column-zero lines
// where top-level definitions start.
type CodeSplitter struct {
	chunkLines   int
	linesOverlap int
	maxChars     int
}

// NewCodeSplitter creates a code splitter from cfg.
// Returns domain.ErrInvalidConfig for non-positive budgets or an
// overlap that is not smaller than the line budget.
func NewCodeSplitter(cfg CodeConfig) (*CodeSplitter, error) {
	if cfg.ChunkLines == 0 {
		cfg.ChunkLines = DefaultChunkLines
		if cfg.ChunkLinesOverlap == 0 {
			cfg.ChunkLinesOverlap = DefaultChunkLinesOverlap
		}
	}
	if cfg.MaxChars == 0 {
		cfg.MaxChars = DefaultMaxChars
	}

	if cfg.ChunkLines <= 0 {
		return nil, fmt.Errorf("%w: chunk lines %d must be positive", domain.ErrInvalidConfig, cfg.ChunkLines)
	}
	if cfg.MaxChars <= 0 {
		return nil, fmt.Errorf("%w: max chars %d must be positive", domain.ErrInvalidConfig, cfg.MaxChars)
	}
	if cfg.ChunkLinesOverlap < 0 {
		return nil, fmt.Errorf("%w: line overlap %d must not be negative", domain.ErrInvalidConfig, cfg.ChunkLinesOverlap)
	}
	if cfg.ChunkLinesOverlap >= cfg.ChunkLines {
		return nil, fmt.Errorf("%w: line overlap %d must be smaller than chunk lines %d",
			domain.ErrInvalidConfig, cfg.ChunkLinesOverlap, cfg.ChunkLines)
	}

	return &CodeSplitter{
		chunkLines:   cfg.ChunkLines,
		linesOverlap: cfg.ChunkLinesOverlap,
		maxChars:     cfg.MaxChars,
	}, nil
}

// Split cuts text into chunks of at most ChunkLines lines and MaxChars
// characters, consecutive chunks sharing ChunkLinesOverlap lines.
// Whitespace-only input yields zero chunks.
func (s *CodeSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := s.boundedLines(text)

	var chunks []string
	start := 0
	for start < len(lines) {
		end := s.chunkEnd(lines, start)

		chunk := strings.Join(lines[start:end], "\n")
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(lines) {
			break
		}
		next := end - s.linesOverlap
		if next <= start {
			// Overlap would not advance; move forward without it.
			next = end
		}
		start = next
	}
	return chunks
}

// chunkEnd returns the exclusive end index for a chunk starting at
// start, honouring both the line and character budgets and preferring
// a syntactic boundary when one falls in the second half of the window.
func (s *CodeSplitter) chunkEnd(lines []string, start int) int {
	end := start
	chars := 0
	for end < len(lines) && end-start < s.chunkLines {
		lineChars := len(lines[end]) + 1 // newline
		if chars+lineChars > s.maxChars && end > start {
			break
		}
		chars += lineChars
		end++
	}
	if end >= len(lines) {
		return len(lines)
	}

	// Snap back to the last blank or column-zero line so chunks end
	// where a top-level definition does, when that loses less than
	// half the window.
	for i := end - 1; i > start+(end-start)/2; i-- {
		if isBoundaryLine(lines[i]) {
			return i + 1
		}
	}
	return end
}

// boundedLines splits text into lines, hard-splitting any single line
// longer than MaxChars so every line fits the character budget.
func (s *CodeSplitter) boundedLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if len(line) < s.maxChars {
			lines = append(lines, line)
			continue
		}
		lines = append(lines, Runes().Cut(line, s.maxChars-1)...)
	}
	return lines
}

// isBoundaryLine reports whether a line looks like a top-level break:
// blank, or code starting at column zero.
func isBoundaryLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	r := rune(line[0])
	return r != ' ' && r != '\t'
}
