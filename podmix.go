// SPDX-License-Identifier: EPL-2.0

package podmix

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/aiff"
	"github.com/ik5/podmix/formats/mp3"
	"github.com/ik5/podmix/formats/vorbis"
	"github.com/ik5/podmix/formats/wav"
)

var registry = NewRegistry()

// NewRegistry returns a registry holding every decoder podmix ships.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(audio.FormatWAV, wav.Decoder{})
	r.Register(audio.FormatMP3, mp3.Decoder{})
	r.Register(audio.FormatVorbis, vorbis.Decoder{})
	r.Register(audio.FormatAIFF, aiff.Decoder{})
	return r
}

// Decode reads a whole audio file from r into a buffer. Every failure,
// including an empty or unrecognized input, is an *audio.DecodeError.
func Decode(r io.Reader) (*audio.SampleBuffer, error) {
	return DecodeWith(registry, r)
}

// DecodeWith is Decode with a caller-supplied registry.
func DecodeWith(reg *audio.Registry, r io.Reader) (*audio.SampleBuffer, error) {
	format, dec, rd, err := reg.Detect(r)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(rd)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, audio.NewDecodeError(format, err)
	}
	return buf, nil
}

// DecodeFile opens and decodes the file at path.
func DecodeFile(path string) (*audio.SampleBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
