// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// 16, 24 and 32-bit big-endian PCM is accepted with any channel count:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// go-audio needs to seek, so a reader that cannot is buffered in memory
// first. Failures are returned as *audio.DecodeError with Format "aiff"
// wrapping ErrNotAiffFile, ErrUnsupportedBitDepth or
// ErrUnsupportedAiffLayout.
package aiff
