// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSettings(); err != nil {
		return err
	}
	c.Tone.Preset = strings.TrimSpace(c.Tone.Preset)
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSettings() error {
	if strings.TrimSpace(c.Settings.DBPath) == "" {
		c.Settings.DBPath = defaultDBPath
	}

	var err error
	if c.Settings.DBPath, err = expandPath(c.Settings.DBPath); err != nil {
		return fmt.Errorf("settings.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console", "text":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
}
