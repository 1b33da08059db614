// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"math"
)

// MaxSampleRate bounds audio.sample_rate.
const MaxSampleRate = 384000

// maxGain is the loudest gain accepted for a secondary track.
const maxGain = 4.0

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := validateGain("tone.gain", c.Tone.Gain); err != nil {
		return err
	}
	if err := validateGain("ambient.gain", c.Ambient.Gain); err != nil {
		return err
	}
	if c.Settings.DBPath == "" {
		return errors.New("settings.db_path must be set")
	}
	return c.validateLogging()
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate < 0 || c.Audio.SampleRate > MaxSampleRate {
		return fmt.Errorf("audio.sample_rate must be between 0 and %d, got %d", MaxSampleRate, c.Audio.SampleRate)
	}
	return nil
}

func validateGain(field string, gain float64) error {
	if math.IsNaN(gain) || gain < 0 || gain > maxGain {
		return fmt.Errorf("%s must be between 0 and %g, got %g", field, maxGain, gain)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
