package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAmendo()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAmendo() {
	if value, ok := os.LookupEnv("AMENDO_SERVER"); ok && strings.TrimSpace(value) != "" {
		c.Amendo.BaseURL = value
	}
	c.Amendo.BaseURL = strings.TrimRight(strings.TrimSpace(c.Amendo.BaseURL), "/")

	if strings.TrimSpace(c.Amendo.APIKey) == "" {
		if value, ok := os.LookupEnv("AMENDO_API_KEY"); ok {
			c.Amendo.APIKey = value
		}
	}
	c.Amendo.APIKey = strings.TrimSpace(c.Amendo.APIKey)

	if strings.TrimSpace(c.Amendo.AssemblyLine) == "" {
		if value, ok := os.LookupEnv("AMENDO_ASSEMBLYLINE"); ok {
			c.Amendo.AssemblyLine = value
		}
	}
	c.Amendo.AssemblyLine = strings.TrimSpace(c.Amendo.AssemblyLine)

	c.Amendo.UserAgent = strings.TrimSpace(c.Amendo.UserAgent)
	if c.Amendo.UserAgent == "" {
		c.Amendo.UserAgent = defaultUserAgent
	}
	c.Client.ID = strings.TrimSpace(c.Client.ID)
	if c.Client.ID == "" {
		c.Client.ID = defaultClientID
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
