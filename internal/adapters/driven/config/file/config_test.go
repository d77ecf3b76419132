package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ragpipe/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.Equal(t, "sentence", cfg.Splitter.Type)
	assert.Equal(t, DefaultChunkSize, cfg.Splitter.ChunkSize)
	assert.Empty(t, cfg.Pipeline.Stages)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
top_k = 5

[splitter]
type = "sentence"
chunk_size = 512
chunk_overlap = 64
window_size = 3

[storage]
backend = "sqlite"
data_dir = "/tmp/ragpipe-test"

[embedding]
provider = "ollama"
model = "all-minilm"

[[pipeline.stage]]
name = "keyword"
[pipeline.stage.params]
required = ["fox"]

[[pipeline.stage]]
name = "similarity"
[pipeline.stage.params]
cutoff = 0.7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 512, cfg.Splitter.ChunkSize)
	assert.Equal(t, 3, cfg.Splitter.WindowSize)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "all-minilm", cfg.Embedding.Model)

	require.Len(t, cfg.Pipeline.Stages, 2)
	assert.Equal(t, "keyword", cfg.Pipeline.Stages[0].Name)
	assert.Equal(t, "similarity", cfg.Pipeline.Stages[1].Name)
	assert.Equal(t, 0.7, cfg.Pipeline.Stages[1].Params["cutoff"])
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "not valid [toml")

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown splitter", "[splitter]\ntype = \"paragraph\""},
		{"unknown backend", "[storage]\nbackend = \"postgres\""},
		{"unknown provider", "[embedding]\nprovider = \"cohere\""},
		{"unnamed stage", "[[pipeline.stage]]\n[pipeline.stage.params]\nx = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.TopK = 7
	cfg.Pipeline.Stages = []domain.StageSpec{
		{Name: "keyword", Params: map[string]any{"required": []string{"x"}}},
	}
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.TopK)
	require.Len(t, loaded.Pipeline.Stages, 1)
	assert.Equal(t, "keyword", loaded.Pipeline.Stages[0].Name)
}
