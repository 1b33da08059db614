// SPDX-License-Identifier: EPL-2.0

package audio

import "bytes"

// sniffLen is the number of leading bytes Sniff needs to see.
const sniffLen = 12

// Format keys returned by Sniff. They double as Registry keys.
const (
	FormatWAV    = "wav"
	FormatMP3    = "mp3"
	FormatVorbis = "ogg"
	FormatAIFF   = "aiff"
	FormatMP4    = "m4a"
	FormatWebM   = "webm"
)

// Sniff identifies a container from its first bytes.
//
// M4A and WebM are recognized so that callers get a precise DecodeError,
// even though no decoder ships for them.
func Sniff(head []byte) (string, bool) {
	switch {
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return FormatWAV, true
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("FORM")) &&
		(bytes.Equal(head[8:12], []byte("AIFF")) || bytes.Equal(head[8:12], []byte("AIFC"))):
		return FormatAIFF, true
	case bytes.HasPrefix(head, []byte("OggS")):
		return FormatVorbis, true
	case bytes.HasPrefix(head, []byte("ID3")):
		return FormatMP3, true
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		// MPEG audio frame sync, no ID3 tag
		return FormatMP3, true
	case len(head) >= 8 && bytes.Equal(head[4:8], []byte("ftyp")):
		return FormatMP4, true
	case bytes.HasPrefix(head, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return FormatWebM, true
	}

	return "", false
}
