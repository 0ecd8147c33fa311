package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBaseURL(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		url       string
		shouldErr bool
	}{
		{"http", "http://127.0.0.1:5000", false},
		{"https with path", "https://chat.example.com/app", false},
		{"empty", "", true},
		{"missing scheme", "chat.example.com", true},
		{"ftp scheme", "ftp://chat.example.com", true},
		{"missing host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBaseURL(tt.url)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStorageDriver(t *testing.T) {
	v := NewValidator()

	for _, driver := range []string{"file", "sqlite", "redis", "memory"} {
		assert.NoError(t, v.ValidateStorageDriver(driver), driver)
	}
	assert.Error(t, v.ValidateStorageDriver("localStorage"))
}

func TestValidateLimit(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateLimit("limit", 1))
	assert.NoError(t, v.ValidateLimit("limit", 1000))
	assert.Error(t, v.ValidateLimit("limit", 0))
	assert.Error(t, v.ValidateLimit("limit", 1001))
}

func TestValidateSchedule(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateSchedule("@every 30s"))
	assert.NoError(t, v.ValidateSchedule("*/5 * * * *"))
	assert.Error(t, v.ValidateSchedule(""))
	assert.Error(t, v.ValidateSchedule("every now and then"))
}

func TestValidateLogLevel(t *testing.T) {
	v := NewValidator()

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			assert.NoError(t, v.ValidateLogLevel(level))
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		assert.Error(t, v.ValidateLogLevel("trace"))
	})
}

func TestValidateConfig(t *testing.T) {
	v := NewValidator()

	t.Run("valid config", func(t *testing.T) {
		assert.Empty(t, v.ValidateConfig(DefaultConfig()))
	})

	t.Run("collects every problem", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.BaseURL = ""
		cfg.Storage.Driver = "redis"
		cfg.Storage.RedisAddr = ""
		cfg.Defaults.ListLimit = 0
		cfg.Logging.Level = "loud"

		errs := v.ValidateConfig(cfg)
		assert.Len(t, errs, 4)
	})
}
