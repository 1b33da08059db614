// SPDX-License-Identifier: EPL-2.0

// Package wav reads PCM WAV files and writes canonical 16-bit PCM WAV.
//
// # Decoding
//
// Decoder wraps github.com/go-audio/wav and accepts PCM at 16, 24 or 32
// bits per sample with any channel count and sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    var decErr *audio.DecodeError
//	    if errors.As(err, &decErr) { ... }
//	}
//	buf, err := audio.ReadAll(src)
//
// Samples are scaled by the negative full scale of the bit depth, so a
// 16-bit sample v decodes to v/32768. Inputs that cannot seek are buffered
// in memory first.
//
// Failures are returned as *audio.DecodeError with Format "wav" wrapping
// ErrNotWavFile, ErrOnlyPCMSupported, ErrUnsupportedBitDepth or
// ErrInvalidLayout.
//
// # Encoding
//
// Encode writes a SampleBuffer as a 44-byte canonical header followed by
// frame-major little-endian int16 samples:
//
//	err := wav.Encode(out, buf)
//
// Each sample is clipped to [-1, 1] and quantized asymmetrically
// (x*32767 above zero, x*32768 below), so decoding the result gives back
// exactly the quantized values. WriteWAV16 writes samples that are already
// int16, and Header builds the header alone.
package wav
