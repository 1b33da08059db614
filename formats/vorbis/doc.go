// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Samples come out of the decoder as float32 already, so the source is a
// thin adapter over oggvorbis.Reader that keeps reads frame aligned:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// Errors from the Ogg or Vorbis layers are reported as *audio.DecodeError
// with Format "ogg".
package vorbis
