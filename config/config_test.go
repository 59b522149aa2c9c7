package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHasSaneValues(t *testing.T) {
	c := Default()
	require.Greater(t, c.Workers, 0)
	require.Greater(t, c.TTSizeMB, 0)
	require.NotEmpty(t, c.AspirationWindows)
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.toml")
	err := os.WriteFile(path, []byte(`
workers = 8
tt_size_mb = 128
`), 0o644)
	require.NoError(t, err)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, c.Workers)
	require.Equal(t, 128, c.TTSizeMB)
	require.Equal(t, Default().NullMoveMinDepth, c.NullMoveMinDepth)
	require.Equal(t, Default().AspirationWindows, c.AspirationWindows)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}
