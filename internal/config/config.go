package config

import (
	"encoding/json"
	"fmt"
)

// DefaultBot is the bot new sessions are created for when none is given.
const DefaultBot = "Articuno.AI"

// Config represents the articuno client configuration
type Config struct {
	// Chat server
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Local storage for current session/bot
	Storage StorageConfig `json:"storage" mapstructure:"storage"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Request defaults
	Defaults DefaultsConfig `json:"defaults" mapstructure:"defaults"`

	// Sidebar watch mode
	Watch WatchConfig `json:"watch" mapstructure:"watch"`

	// Prometheus endpoint
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// ServerConfig describes how to reach the chat web service
type ServerConfig struct {
	BaseURL           string            `json:"base_url" mapstructure:"base_url"`
	Timeout           int               `json:"timeout" mapstructure:"timeout"` // seconds, 0 waits forever
	Headers           map[string]string `json:"headers" mapstructure:"headers"`
	ValidateResponses bool              `json:"validate_responses" mapstructure:"validate_responses"`
}

// StorageConfig selects the local storage driver
type StorageConfig struct {
	Driver        string `json:"driver" mapstructure:"driver"` // file, sqlite, redis, memory
	Path          string `json:"path" mapstructure:"path"`     // file or sqlite path
	RedisAddr     string `json:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string `json:"redis_password" mapstructure:"redis_password"`
	RedisDB       int    `json:"redis_db" mapstructure:"redis_db"`
	RedisTTL      int    `json:"redis_ttl" mapstructure:"redis_ttl"` // seconds, 0 keeps keys forever
	RedisPrefix   string `json:"redis_prefix,omitempty" mapstructure:"redis_prefix"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	AuditFile string `json:"audit_file" mapstructure:"audit_file"`
	// otel spans as JSON lines, empty disables
	TraceFile string `json:"trace_file" mapstructure:"trace_file"`
	MaxSize   int    `json:"max_size" mapstructure:"max_size"` // MB
	MaxAge    int    `json:"max_age" mapstructure:"max_age"`   // days
	Compress  bool   `json:"compress" mapstructure:"compress"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`

	RedactPatterns []string `json:"redact_patterns,omitempty" mapstructure:"redact_patterns"` // extra regexps, needs redaction
}

// DefaultsConfig holds default request parameters
type DefaultsConfig struct {
	Bot          string `json:"bot" mapstructure:"bot"`
	HistoryLimit int    `json:"history_limit" mapstructure:"history_limit"`
	ListLimit    int    `json:"list_limit" mapstructure:"list_limit"`
	SearchLimit  int    `json:"search_limit" mapstructure:"search_limit"`
}

// WatchConfig configures `articuno watch`
type WatchConfig struct {
	Schedule string `json:"schedule" mapstructure:"schedule"` // cron spec
	Output   string `json:"output" mapstructure:"output"`     // rendered sidebar HTML path
}

// MetricsConfig configures the prometheus listener
type MetricsConfig struct {
	Addr string `json:"addr" mapstructure:"addr"` // empty disables
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:           "http://127.0.0.1:5000",
			Timeout:           0,
			Headers:           map[string]string{},
			ValidateResponses: true,
		},
		Storage: StorageConfig{
			Driver:    "file",
			RedisAddr: "127.0.0.1:6379",
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSize:   10,
			MaxAge:    7,
			Compress:  true,
			Redaction: true,
		},
		Defaults: DefaultsConfig{
			Bot:          DefaultBot,
			HistoryLimit: 50,
			ListLimit:    10,
			SearchLimit:  20,
		},
		Watch: WatchConfig{
			Schedule: "@every 30s",
		},
	}
}

// ToJSON converts config to JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// FromJSON loads config from JSON
func FromJSON(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
