package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [paths...]", ingestCmd.Use)
}

func TestIngestCmd_RequiresFiles(t *testing.T) {
	_, err := runCommand(t, "ingest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	ingestService = nil

	path := writeTempFile(t, "some text")
	_, err := runCommand(t, "ingest", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestIngestCmd_IngestsFiles(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	path := writeTempFile(t, "First sentence here. Second sentence here.")

	out, err := runCommand(t, "ingest", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ingested 1 documents")
}

func TestIngestCmd_DirMode(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha text"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B\n\nbeta text"), 0600))

	out, err := runCommand(t, "ingest", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Ingested 2 documents")

	ingestDir = false
}
