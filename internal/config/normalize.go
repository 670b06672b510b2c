package config

import (
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTool()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	stateDir, err := expandPath(valueOrDefault(c.Paths.StateDir, defaultStateDir))
	if err != nil {
		return err
	}
	c.Paths.StateDir = stateDir

	historyPath := strings.TrimSpace(c.History.Path)
	if historyPath == "" {
		c.History.Path = filepath.Join(stateDir, "history.db")
		return nil
	}
	expanded, err := expandPath(historyPath)
	if err != nil {
		return err
	}
	c.History.Path = expanded
	return nil
}

func (c *Config) normalizeTool() {
	c.Tool.Binary = strings.TrimSpace(c.Tool.Binary)
	if c.Tool.Binary == "" {
		c.Tool.Binary = defaultBinary
	}
	if c.Tool.TimeoutSeconds < 0 {
		c.Tool.TimeoutSeconds = 0
	}
	if c.Tool.LockTimeoutSeconds < 0 {
		c.Tool.LockTimeoutSeconds = 0
	}
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

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
