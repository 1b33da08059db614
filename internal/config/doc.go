// SPDX-License-Identifier: EPL-2.0

// Package config loads, normalizes and validates podmix configuration.
//
// Defaults come from Default; a TOML file, when found, overrides them field
// by field. Paths are tilde-expanded and made absolute, and the logging
// format is canonicalized before Validate runs, so callers always see a
// usable Config.
package config
