// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The decoded stream is always 2 channels at the file's sample rate, with
// int16 samples scaled by 1/32768:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// Use audio.NewMonoMixer or audio.Downmix to get a single channel back.
// A stream go-mp3 cannot parse is reported as *audio.DecodeError with
// Format "mp3". ID3v2 tags are skipped by go-mp3.
package mp3
