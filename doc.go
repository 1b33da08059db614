// SPDX-License-Identifier: EPL-2.0

// Package podmix enriches spoken audio with a tone and an ambient bed and
// exports the result as 16-bit PCM WAV.
//
// The pipeline is decode, generate, mix, encode:
//
//	voice, err := podmix.DecodeFile("episode.mp3")
//	if err != nil {
//		return err
//	}
//
//	err = podmix.Enrich(out, podmix.RenderRequest{
//		Voice:    voice,
//		Tone:     tone.Binaural{BaseHz: 200, BeatOffsetHz: 40},
//		ToneGain: 0.1,
//	})
//
// # Supported Formats
//
// Decode sniffs the container and dispatches to:
//   - WAV (PCM 16, 24 and 32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16, 24 and 32-bit) via formats/aiff
//
// M4A and WebM are recognized but not decoded; they fail with an
// *audio.DecodeError naming the format.
//
// # Lower Level Pieces
//
// Render and Enrich are thin wrappers over the subpackages, which can be
// used directly: audio for buffers, mixing and resampling, tone for tone
// synthesis, formats/wav for the encoder and analysis for spectra.
package podmix
