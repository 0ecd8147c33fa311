package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader("/path/to/config.json")
	assert.NotNil(t, loader)
	assert.Equal(t, "/path/to/config.json", loader.GetConfigPath())
}

func TestLoaderLoad(t *testing.T) {
	t.Run("load default config when file doesn't exist", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfg, err := NewLoader(filepath.Join(tmpDir, "nonexistent.json")).Load()

		require.NoError(t, err)
		assert.Equal(t, "file", cfg.Storage.Driver)
		assert.NotEmpty(t, cfg.DataDir)
		assert.NotEmpty(t, cfg.Storage.Path)
	})

	t.Run("load config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "articuno.json")

		testConfig := `{
			"server": {"base_url": "https://chat.example.com", "timeout": 15},
			"storage": {"driver": "sqlite"},
			"defaults": {"bot": "Grok-3", "list_limit": 25},
			"data_dir": "` + filepath.ToSlash(tmpDir) + `"
		}`
		require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))

		cfg, err := NewLoader(configPath).Load()
		require.NoError(t, err)

		assert.Equal(t, "https://chat.example.com", cfg.Server.BaseURL)
		assert.Equal(t, 15, cfg.Server.Timeout)
		assert.Equal(t, "sqlite", cfg.Storage.Driver)
		assert.Equal(t, "Grok-3", cfg.Defaults.Bot)
		assert.Equal(t, 25, cfg.Defaults.ListLimit)
		assert.Equal(t, 50, cfg.Defaults.HistoryLimit)
	})

	t.Run("set default paths", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "articuno.json")

		testConfig := `{"data_dir": "` + filepath.ToSlash(tmpDir) + `", "storage": {"driver": "sqlite"}}`
		require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))

		cfg, err := NewLoader(configPath).Load()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(tmpDir, "articuno.log"), cfg.Logging.File)
		assert.Equal(t, filepath.Join(tmpDir, "local_storage.db"), cfg.Storage.Path)
		assert.Equal(t, filepath.Join(tmpDir, "sidebar.html"), cfg.Watch.Output)
	})

	t.Run("invalid json", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "articuno.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{invalid`), 0644))

		_, err := NewLoader(configPath).Load()
		assert.Error(t, err)
	})
}

func TestLoaderSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "articuno.json")

	cfg := DefaultConfig()
	cfg.Server.BaseURL = "http://localhost:8000"
	cfg.Defaults.Bot = "Gemini 2.5 Flash"
	cfg.DataDir = tmpDir

	loader := NewLoader(configPath)
	require.NoError(t, loader.Save(cfg))

	_, err := os.Stat(configPath)
	require.NoError(t, err)

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", loaded.Server.BaseURL)
	assert.Equal(t, "Gemini 2.5 Flash", loaded.Defaults.Bot)
}
