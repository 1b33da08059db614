// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix/internal/config"
	"github.com/ik5/podmix/internal/logging"
	"github.com/ik5/podmix/settings"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds the command logger on cmd's error stream. The --log-level
// and --log-format flags win over the configuration file.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	opts := logging.Options{Level: "info", Format: "console", Writer: cmd.ErrOrStderr()}
	if cfg, err := c.ensureConfig(); err == nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
	}
	if v := flagValue(c.logLevelFlag); v != "" {
		opts.Level = v
	}
	if v := flagValue(c.logFormatFlag); v != "" {
		opts.Format = v
	}

	logger, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	return logging.NewComponentLogger(logger, "cli"), nil
}

// withStore opens the settings database for the duration of fn.
func (c *commandContext) withStore(fn func(settings.Store) error) (err error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	store, err := settings.OpenSQLite(cfg.Settings.DBPath)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close settings: %w", cerr))
		}
	}()

	return fn(store)
}

func flagValue(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
