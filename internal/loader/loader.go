// Package loader reads files from disk into documents ready for
// ingestion. Markdown files are flattened to plain text so the
// splitter sees prose, not formatting.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
	"github.com/custodia-labs/ragpipe/internal/logger"
)

// DefaultExtensions are the file extensions loaded from directories.
var DefaultExtensions = []string{".txt", ".md", ".markdown"}

// Options control directory loading.
type Options struct {
	// Extensions filters files by extension (default: DefaultExtensions).
	Extensions []string
}

// LoadFile reads a single file into a document. The document ID is
// the base filename; metadata records the path, modification time and
// extracted title.
func LoadFile(path string) (domain.Document, error) {
	return loadFile(path, filepath.Base(path))
}

// LoadDir walks root and loads every matching file. Document IDs are
// paths relative to root, so re-ingesting the same tree updates
// rather than duplicates.
func LoadDir(ctx context.Context, root string, opts Options) ([]domain.Document, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	var docs []domain.Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			// Skip hidden directories like .git
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(extensions, strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		doc, err := loadFile(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	logger.Debug("loaded %d documents from %s", len(docs), root)
	return docs, nil
}

func loadFile(path, id string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("stating %s: %w", path, err)
	}

	text := string(data)
	metadata := map[string]any{
		"path": path,
		"date": info.ModTime().UTC().Format(time.RFC3339),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		metadata["format"] = "markdown"
		metadata["title"] = extractTitle(text, path)
		text = stripMarkdown(text)
	default:
		metadata["format"] = "plaintext"
		metadata["title"] = titleFromFilename(path)
	}

	return domain.Document{
		ID:        id,
		Text:      text,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// extractTitle takes the first H1 heading, falling back to the
// filename.
func extractTitle(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return titleFromFilename(path)
}

func titleFromFilename(path string) string {
	filename := filepath.Base(path)
	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
