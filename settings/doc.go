// SPDX-License-Identifier: EPL-2.0

// Package settings persists user tone presets and small key/value settings.
//
// Store is injected wherever presets are needed; nothing in podmix holds a
// global store. MemoryStore serves tests and one-shot runs, SQLiteStore is
// the on-disk store opened by the CLI.
//
// Preset names are case-insensitive and stored lower-cased. Saving a preset
// under an existing name replaces its tone and gain but keeps its ID.
package settings
