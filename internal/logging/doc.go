// SPDX-License-Identifier: EPL-2.0

// Package logging builds the slog loggers used by the podmix CLI and
// wizard.
//
// Two formats are supported: "console", a single human-readable line per
// record with the component name pulled to the front, and "json" with
// short ts/level/msg keys. Library packages never log; they receive no
// logger at all.
package logging
