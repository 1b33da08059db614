// SPDX-License-Identifier: EPL-2.0

package config

const (
	defaultToneGain    = 0.1
	defaultAmbientGain = 0.3
	defaultDBPath      = "~/.local/share/podmix/settings.db"
)

// Default returns the built-in configuration: no tone, quiet ambient,
// export at the voice's own rate in its own channel layout.
func Default() Config {
	return Config{
		Audio: Audio{
			SampleRate: 0,
			Mono:       false,
		},
		Tone: Tone{
			Gain: defaultToneGain,
		},
		Ambient: Ambient{
			Gain: defaultAmbientGain,
		},
		Settings: Settings{
			DBPath: defaultDBPath,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
