package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "serials_export.txt", cfg.ExportPath)
	assert.NotEmpty(t, cfg.HistoryPath)
	assert.Equal(t, 50, cfg.HistoryKeep)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MalformedDefaultFile(t *testing.T) {
	// A broken config.yaml found by the default search must surface, not
	// silently fall back to defaults.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("export_path: [unclosed\n"), 0o644))
	t.Chdir(dir)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"export_path: /var/lib/hwdrift/baseline.txt\nhistory_keep: 10\nlog_level: debug\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/hwdrift/baseline.txt", cfg.ExportPath)
	assert.Equal(t, 10, cfg.HistoryKeep)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Keys the file leaves out keep their defaults.
	assert.False(t, cfg.NoColor)
	assert.NotEmpty(t, cfg.HistoryPath)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
