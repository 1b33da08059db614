// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory and streaming audio primitives used
// by podmix.
//
// This package contains:
//   - SampleBuffer, an immutable multi-channel float32 signal
//   - Source, a streaming interleaved reader, and Decoder
//   - Registry for decoders, with container sniffing
//   - Mix for combining a primary track with looped overlays
//   - Resampler and MonoMixer stream adapters
//   - DecodeError and ErrInvalidParameter
//
// # Buffers and Streams
//
// Decoders produce a Source. ReadAll collects a Source into a SampleBuffer,
// and SampleBuffer.Reader turns a buffer back into a Source:
//
//	src, _ := decoder.Decode(file)
//	buf, err := audio.ReadAll(src)
//
//	// stream a buffer through the resampler
//	resampled, err := audio.ReadAll(audio.NewResampler(buf.Reader(), 48000))
//
// Samples are float32, nominally in [-1.0, 1.0]. Mixing may push values
// outside that range; they are clipped only when encoded.
//
// # Mixing
//
// The first track of a MixSpec is the primary. The output has the primary's
// length and channel count, and every other track is looped to fill it:
//
//	out, err := audio.Mix(audio.MixSpec{Tracks: []audio.Track{
//	    {Buffer: voice, Gain: 1.0},
//	    {Buffer: tone, Gain: 0.1},
//	    {Buffer: rain, Gain: 0.3},
//	}})
//
// A track with fewer channels than the primary repeats its last channel;
// extra channels are dropped. Tracks at a different sample rate are
// resampled first.
//
// # Resampling
//
// The Resampler uses Catmull-Rom cubic interpolation and a one-pole
// low-pass when downsampling:
//
//	resampler := audio.NewResampler(source, 16000)
//
// # Errors
//
// Decoding failures are reported as *DecodeError; use errors.As to get the
// container format. Contract violations wrap ErrInvalidParameter.
package audio
