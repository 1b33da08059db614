// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/podmix/audio"
)

// aiffReader is the part of aiff.Decoder the source uses.
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps aiff.Decoder as an audio.Source.
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	scale      float32
	data       []int
	view       goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.data) }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.data) < want {
		s.data = make([]int, want)
	}
	s.data = s.data[:want]

	var (
		filled int
		err    error
	)
	for filled < want {
		s.view.Data = s.data[filled:want]

		var n int
		n, err = s.dec.PCMBuffer(&s.view)
		filled += n
		if err != nil || n == 0 {
			break
		}
	}
	filled -= filled % s.channels

	for i := range filled {
		dst[i] = float32(s.data[i]) / s.scale
	}

	switch {
	case err != nil && err != io.EOF:
		return filled, err
	case filled == 0:
		return 0, io.EOF
	default:
		return filled, nil
	}
}

// Decoder decodes uncompressed AIFF and AIFF-C files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, audio.NewDecodeError(audio.FormatAIFF, err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, audio.NewDecodeError(audio.FormatAIFF, ErrNotAiffFile)
	}
	dec.ReadInfo()

	scale, ok := fullScale(int(dec.BitDepth))
	if !ok {
		return nil, audio.NewDecodeError(audio.FormatAIFF, ErrUnsupportedBitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, audio.NewDecodeError(audio.FormatAIFF, ErrUnsupportedAiffLayout)
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
		data:       make([]int, 4096-4096%format.NumChannels),
		view:       goaudio.IntBuffer{Format: format},
	}, nil
}

func fullScale(bitDepth int) (float32, bool) {
	switch bitDepth {
	case 16:
		return 1 << 15, true
	case 24:
		return 1 << 23, true
	case 32:
		return 1 << 31, true
	default:
		return 0, false
	}
}
