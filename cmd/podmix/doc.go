// SPDX-License-Identifier: EPL-2.0

// Command podmix layers a tone and an ambient bed under a voice recording
// and exports the result as 16-bit PCM WAV.
//
// Subcommands:
//
//	podmix render INPUT -o OUT.wav [--preset NAME | --tone-hz F | --binaural B:O]
//	podmix tone -o OUT.wav [--preset NAME | --tone-hz F | --binaural B:O] [--duration 10s]
//	podmix convert INPUT -o OUT.wav [--sample-rate 16000] [--mono=false]
//	podmix analyze FILE
//	podmix presets list | save NAME | delete NAME
//	podmix config init | validate
//
// Configuration is read from ~/.config/podmix/config.toml, or ./podmix.toml,
// or the file named by --config. User presets and the last used preset are
// kept in the SQLite database named by settings.db_path.
package main
