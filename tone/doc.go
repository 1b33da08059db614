// SPDX-License-Identifier: EPL-2.0

// Package tone synthesizes pure and binaural tones as stereo SampleBuffers.
//
// A Spec is either Pure, the same sine on both channels, or Binaural, a
// sine at BaseHz on the left and BaseHz+BeatOffsetHz on the right:
//
//	buf, err := tone.Generate(tone.Binaural{BaseHz: 200, BeatOffsetHz: 40}, 10*time.Second, 44100)
//
// Every call starts at phase 0; no state is carried between calls.
//
// # Presets
//
// Presets names the tones offered by the podcast tool:
//
//	432, 528, 639, 741        pure tones in Hz
//	gamma, alpha, theta, delta binaural beats at 40, 10, 6 and 3 Hz
package tone
