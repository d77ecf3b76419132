package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalCmd_Use(t *testing.T) {
	assert.Equal(t, "eval [dataset.json]", evalCmd.Use)
}

func TestEvalCmd_ScoresDataset(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dataset := `[
		{"query": "q1", "retrieved": ["n-1", "n-2"], "relevant": ["n-1"]},
		{"query": "q2", "retrieved": ["n-3", "n-4"], "relevant": ["n-4"]}
	]`
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0600))

	out, err := runCommand(t, "eval", path, "-k", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Evaluated: 2")
	assert.Contains(t, out, "Hit rate:  1.0000")
	assert.Contains(t, out, "MRR:       0.7500")

	evalCutoff = 0
}

func TestEvalCmd_InvalidDataset(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := runCommand(t, "eval", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing dataset")
}
