package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, contents string) {
	t.Helper()
	dir := filepath.Join(root, ".prompt")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644))
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.TreeEnabled())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "max_files: 500\ntimeout_secs: 60\ninclude_file_tree: false\n")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxFiles)
	assert.Equal(t, 60, cfg.TimeoutSecs)
	assert.False(t, cfg.TreeEnabled())

	def := Default()
	assert.Equal(t, def.MaxFileBytes, cfg.MaxFileBytes)
	assert.Equal(t, def.HeadLines, cfg.HeadLines)
	assert.Equal(t, def.TokenBudget, cfg.TokenBudget)
}

func TestLoadMalformedFileIsAnError(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "max_files: [not a number\n")

	_, err := Load(root)
	assert.Error(t, err)
}
