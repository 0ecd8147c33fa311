package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateBaseURL validates the chat server base URL
func (v *Validator) ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("server base_url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server base_url must include a host")
	}
	return nil
}

// ValidateStorageDriver validates the local storage driver name
func (v *Validator) ValidateStorageDriver(driver string) error {
	validDrivers := []string{"file", "sqlite", "redis", "memory"}
	for _, valid := range validDrivers {
		if driver == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid storage driver: %s (must be one of: %s)", driver, strings.Join(validDrivers, ", "))
}

// ValidateLimit validates a positive request limit
func (v *Validator) ValidateLimit(name string, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, limit)
	}
	if limit > 1000 {
		return fmt.Errorf("%s too large (max 1000), got %d", name, limit)
	}
	return nil
}

// ValidateSchedule validates a cron spec for watch mode
func (v *Validator) ValidateSchedule(spec string) error {
	if spec == "" {
		return fmt.Errorf("watch schedule cannot be empty")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", spec, err)
	}
	return nil
}

// ValidateLogLevel validates log level
func (v *Validator) ValidateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (must be one of: %s)", level, strings.Join(validLevels, ", "))
}

// ValidateConfig performs comprehensive validation
func (v *Validator) ValidateConfig(cfg *Config) []error {
	var errors []error

	if err := v.ValidateBaseURL(cfg.Server.BaseURL); err != nil {
		errors = append(errors, err)
	}
	if cfg.Server.Timeout < 0 {
		errors = append(errors, fmt.Errorf("server timeout must be >= 0"))
	}

	if err := v.ValidateStorageDriver(cfg.Storage.Driver); err != nil {
		errors = append(errors, err)
	}
	if cfg.Storage.Driver == "redis" && cfg.Storage.RedisAddr == "" {
		errors = append(errors, fmt.Errorf("storage redis_addr is required for the redis driver"))
	}
	if cfg.Storage.RedisTTL < 0 {
		errors = append(errors, fmt.Errorf("storage redis_ttl must be >= 0"))
	}

	if strings.TrimSpace(cfg.Defaults.Bot) == "" {
		errors = append(errors, fmt.Errorf("defaults bot cannot be empty"))
	}
	for name, limit := range map[string]int{
		"defaults history_limit": cfg.Defaults.HistoryLimit,
		"defaults list_limit":    cfg.Defaults.ListLimit,
		"defaults search_limit":  cfg.Defaults.SearchLimit,
	} {
		if err := v.ValidateLimit(name, limit); err != nil {
			errors = append(errors, err)
		}
	}

	if err := v.ValidateSchedule(cfg.Watch.Schedule); err != nil {
		errors = append(errors, err)
	}

	if err := v.ValidateLogLevel(cfg.Logging.Level); err != nil {
		errors = append(errors, err)
	}

	return errors
}
