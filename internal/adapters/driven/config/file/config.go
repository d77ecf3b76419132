package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

// Default configuration values.
const (
	DefaultChunkSize    = 1024
	DefaultChunkOverlap = 200
	DefaultTopK         = 10
)

// SplitterConfig selects and tunes the text splitter.
type SplitterConfig struct {
	// Type is "sentence" or "code".
	Type string `toml:"type"`

	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`

	// WindowSize enables sentence-window parsing when positive.
	WindowSize int `toml:"window_size"`
}

// StorageConfig selects the node store backend.
type StorageConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `toml:"backend"`

	// DataDir is the sqlite data directory. Empty means the default
	// under the user home.
	DataDir string `toml:"data_dir"`
}

// EmbeddingConfig selects the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama", "openai" or empty to disable embeddings.
	Provider string `toml:"provider"`

	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
}

// PipelineConfig holds the ordered postprocessor stage list.
type PipelineConfig struct {
	Stages []domain.StageSpec `toml:"stage"`
}

// Config is the full application configuration.
type Config struct {
	TopK      int             `toml:"top_k"`
	Splitter  SplitterConfig  `toml:"splitter"`
	Storage   StorageConfig   `toml:"storage"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		TopK: DefaultTopK,
		Splitter: SplitterConfig{
			Type:         "sentence",
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.ragpipe/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ragpipe", "config.toml"), nil
}

// Load reads the configuration file at path. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidConfig, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (c *Config) validate() error {
	switch c.Splitter.Type {
	case "", "sentence", "code":
	default:
		return fmt.Errorf("%w: unknown splitter type %q", domain.ErrInvalidConfig, c.Splitter.Type)
	}

	switch c.Storage.Backend {
	case "", "memory", "sqlite":
	default:
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidConfig, c.Storage.Backend)
	}

	switch c.Embedding.Provider {
	case "", "ollama", "openai":
	default:
		return fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidConfig, c.Embedding.Provider)
	}

	for i, stage := range c.Pipeline.Stages {
		if stage.Name == "" {
			return fmt.Errorf("%w: pipeline stage %d has no name", domain.ErrInvalidConfig, i)
		}
	}
	return nil
}
