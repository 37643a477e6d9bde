package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"), true)
	assert.Error(t, err)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minidb.toml")
	require.NoError(t, os.WriteFile(path, []byte("store_path = \"/tmp/db\"\nprompt = \"sql>\"\n"), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/db", cfg.StorePath)
	assert.Equal(t, "sql>", cfg.Prompt)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minidb.toml")
	require.NoError(t, os.WriteFile(path, []byte("prompt = \"db>\"\n"), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default().StorePath, cfg.StorePath)
	assert.Equal(t, "db>", cfg.Prompt)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minidb.toml")
	require.NoError(t, os.WriteFile(path, []byte("prompt = [broken\n"), 0o644))

	_, err := Load(path, true)
	assert.Error(t, err)
}
