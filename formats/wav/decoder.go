// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
	"github.com/ik5/podmix/audio"
)

const (
	pcmFormat        = 0x0001
	extensibleFormat = 0xFFFE

	// offset of the sub-format GUID in a WAVE_FORMAT_EXTENSIBLE fmt chunk
	subFormatOffset = 24
)

// pcmSubFormat is KSDATAFORMAT_SUBTYPE_PCM.
var pcmSubFormat = []byte{
	0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// pcmReader is the part of wav.Decoder the source uses, so tests can
// substitute a fake.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	scale      float32
	offset     int
	data       []int
	view       goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.data) }

// ReadSamples fills dst with whole frames. PCMBuffer may return short
// reads that split a frame, so it is called until dst is full or the data
// chunk ends.
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

	// a truncated final frame is dropped
	filled -= filled % s.channels

	for i := range filled {
		dst[i] = float32(s.data[i]-s.offset) / s.scale
	}

	if err != nil {
		return filled, err
	}
	if filled == 0 {
		return 0, io.EOF
	}
	return filled, nil
}

// Decoder decodes integer PCM WAV files with 8, 16, 24 or 32-bit samples,
// in plain or WAVE_FORMAT_EXTENSIBLE layout.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.Seekable(r)
	if err != nil {
		return nil, audio.NewDecodeError(audio.FormatWAV, err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, audio.NewDecodeError(audio.FormatWAV, ErrNotWavFile)
	}

	switch dec.WavAudioFormat {
	case pcmFormat:
	case extensibleFormat:
		pcm, err := isPCMExtensible(rs)
		if err != nil {
			return nil, audio.NewDecodeError(audio.FormatWAV, err)
		}
		if !pcm {
			return nil, audio.NewDecodeError(audio.FormatWAV, ErrOnlyPCMSupported)
		}
	default:
		return nil, audio.NewDecodeError(audio.FormatWAV, ErrOnlyPCMSupported)
	}

	scale, offset, ok := fullScale(int(dec.BitDepth))
	if !ok {
		return nil, audio.NewDecodeError(audio.FormatWAV, ErrUnsupportedBitDepth)
	}

	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, audio.NewDecodeError(audio.FormatWAV, ErrInvalidLayout)
	}

	channels := int(dec.NumChans)
	bufSize := 4096 - 4096%channels

	return &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		scale:      scale,
		offset:     offset,
		data:       make([]int, bufSize),
		view:       goaudio.IntBuffer{Format: dec.Format()},
	}, nil
}

// fullScale is the magnitude of the most negative sample at bitDepth and
// the offset subtracted first. 8-bit WAV samples are unsigned around 128.
func fullScale(bitDepth int) (float32, int, bool) {
	switch bitDepth {
	case 8:
		return 1 << 7, 1 << 7, true
	case 16:
		return 1 << 15, 0, true
	case 24:
		return 1 << 23, 0, true
	case 32:
		return 1 << 31, 0, true
	default:
		return 0, 0, false
	}
}

// isPCMExtensible reports whether the extensible fmt chunk of rs carries
// the integer PCM sub-format. The read position of rs is restored.
func isPCMExtensible(rs io.ReadSeeker) (bool, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("%w", err)
	}

	subFormat, err := readSubFormat(rs)
	if _, serr := rs.Seek(pos, io.SeekStart); serr != nil && err == nil {
		err = fmt.Errorf("%w", serr)
	}
	if err != nil {
		return false, err
	}

	return bytes.Equal(subFormat, pcmSubFormat), nil
}

// readSubFormat walks the RIFF chunks of r to the fmt chunk and returns its
// sub-format GUID, or nil when the chunk is too short to hold one.
func readSubFormat(r io.Reader) ([]byte, error) {
	parser := riff.New(r)
	if err := parser.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	for {
		ch, err := parser.NextChunk()
		if err != nil {
			return nil, fmt.Errorf("fmt chunk: %w", err)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		body := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, body); err != nil {
			return nil, fmt.Errorf("fmt chunk: %w", err)
		}
		if len(body) < subFormatOffset+len(pcmSubFormat) {
			return nil, nil
		}
		return body[subFormatOffset : subFormatOffset+len(pcmSubFormat)], nil
	}
}
