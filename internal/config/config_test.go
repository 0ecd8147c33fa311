package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://127.0.0.1:5000", cfg.Server.BaseURL)
	assert.Equal(t, 0, cfg.Server.Timeout)
	assert.True(t, cfg.Server.ValidateResponses)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, DefaultBot, cfg.Defaults.Bot)
	assert.Equal(t, 50, cfg.Defaults.HistoryLimit)
	assert.Equal(t, 10, cfg.Defaults.ListLimit)
	assert.Equal(t, 20, cfg.Defaults.SearchLimit)
	assert.Equal(t, "@every 30s", cfg.Watch.Schedule)
	assert.Empty(t, NewValidator().ValidateConfig(cfg))
}

func TestConfigJSONRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://chat.example.com"
	cfg.Storage.Driver = "sqlite"

	data, err := cfg.ToJSON()
	require.NoError(t, err)

	loaded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", loaded.Server.BaseURL)
	assert.Equal(t, "sqlite", loaded.Storage.Driver)
}

func TestFromJSONKeepsDefaults(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"defaults": {"bot": "GPT-4o"}}`))
	require.NoError(t, err)

	assert.Equal(t, "GPT-4o", cfg.Defaults.Bot)
	assert.Equal(t, "file", cfg.Storage.Driver)
}

func TestFromJSONInvalid(t *testing.T) {
	_, err := FromJSON([]byte(`{not json`))
	assert.Error(t, err)
}
