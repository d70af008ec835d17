package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAmendo(); err != nil {
		return err
	}
	if err := c.validatePolling(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAmendo() error {
	if c.Amendo.BaseURL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("amendo.base_url is required. Set AMENDO_SERVER env var or edit %s (create with 'amendo config init')", defaultPath)
	}
	parsed, err := url.Parse(c.Amendo.BaseURL)
	if err != nil {
		return fmt.Errorf("amendo.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("amendo.base_url must use http or https, got %q", c.Amendo.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("amendo.base_url must include a host, got %q", c.Amendo.BaseURL)
	}
	if c.Amendo.RequestTimeout <= 0 {
		return errors.New("amendo.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validatePolling() error {
	if c.Polling.IntervalSeconds < 0 {
		return errors.New("polling.interval_seconds must not be negative")
	}
	if c.Polling.Attempts <= 0 {
		return errors.New("polling.attempts must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
