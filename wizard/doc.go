// SPDX-License-Identifier: EPL-2.0

// Package wizard drives one enrichment from input selection to export.
//
// A Session moves through four states:
//
//	SelectingInput --SelectInput--> Configuring --Export--> Exporting --> Done
//	      ^                              |                      |
//	      +------------Back--------------+<-----on failure------+
//
// Configure applies typed updates to the session's MixConfig; the whole
// config is validated when Export submits it. Calls that do not match the
// current state fail with ErrInvalidTransition and leave the session as it
// was. A Session is not safe for concurrent use.
package wizard
