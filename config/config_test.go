package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPrefix(t *testing.T) {
	assert.Equal(t, "y", Default().DefaultPrefix)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().DefaultPrefix, cfg.DefaultPrefix, "missing config file should fall back to defaults")
}

func TestLoadOverridesFromFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "yacgo.toml")
	err := os.WriteFile(path, []byte("default_prefix = \"zz\"\nreport_conflicts = false\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal("zz", cfg.DefaultPrefix)
	assert.False(cfg.ReportConflicts)
}

func TestLoadAppliesTmpdirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.TempDir)
}
