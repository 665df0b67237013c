package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TriM-Organization/bedrock-structure-editor/library"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLibrary, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLibraryPath, cfg.Library.Path)
	assert.Equal(t, string(library.BackendBolt), cfg.Library.Backend)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultExportName, cfg.Export.DefaultName)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvLibrary, "")
	path := writeConfig(t, `
library:
  path: /tmp/lib
  backend: badger
  no_sync: true
log:
  level: debug
export:
  default_name: house.mcstructure
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lib", cfg.Library.Path)
	assert.True(t, cfg.Library.NoSync)
	assert.False(t, cfg.Library.NoGrowSync)
	assert.Equal(t, "house.mcstructure", cfg.Export.DefaultName)

	options := cfg.LibraryOptions(nil)
	assert.Equal(t, library.BackendBadger, options.Backend)
	assert.True(t, options.NoSync)

	assert.Equal(t, pterm.LogLevelDebug, cfg.Logger().Level)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvLibrary, "/srv/structures.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/srv/structures.db", cfg.Library.Path)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "library: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "library:\n  backend: sqlite\n"))
	assert.ErrorContains(t, err, "unknown library backend")

	_, err = Load(writeConfig(t, "log:\n  level: loud\n"))
	assert.ErrorContains(t, err, "unknown log level")
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, pterm.LogLevelWarn, level)

	level, err = ParseLogLevel("off")
	require.NoError(t, err)
	assert.Equal(t, pterm.LogLevelDisabled, level)
}
