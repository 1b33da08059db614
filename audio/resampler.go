// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Resampler streams src at a new sample rate using cubic interpolation.
// Works on interleaved samples and preserves the channel count. A one-pole
// low-pass runs ahead of interpolation when downsampling.
//
// A source of N frames yields ResampledLen(N, src, dst) frames: output frame
// k sits at source position k·src/dst, every position before N is produced,
// and positions past the last source frame hold it.
type Resampler struct {
	src      Source
	srcRate  int64
	dstRate  int
	channels int

	// window of 4 source frames around the read position:
	// win[0] = t-1, win[1] = t, win[2] = t+1, win[3] = t+2
	win    [4][]float32
	filled [4]bool
	primed bool

	// base is the source index held in win[1]; out counts output frames.
	base int64
	out  int64

	readBuf []float32
	eof     bool

	lowPass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		srcRate:  int64(src.SampleRate()),
		dstRate:  dstRate,
		channels: channels,
		readBuf:  make([]float32, channels),
		lowPass:  src.SampleRate() > dstRate,
		alpha:    0.5,
		state:    make([]float32, channels),
	}

	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one source frame into dst and reports whether a frame was
// available.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.readBuf)
	got := n > 0
	if got {
		copy(dst, r.readBuf[:n])
		if r.lowPass {
			for c := range r.channels {
				dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
				r.state[c] = dst[c]
			}
		}
	}

	if err == io.EOF {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return got, fmt.Errorf("%w", err)
	}
	return got, nil
}

// prime loads the first frames of the stream. The read position starts on
// frame 0, so win[0] is a copy of it and marked unfilled.
func (r *Resampler) prime() error {
	r.primed = true

	n, err := r.src.ReadSamples(r.readBuf)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}
	if n == 0 {
		return io.EOF
	}

	copy(r.win[1], r.readBuf[:n])
	copy(r.win[0], r.win[1])
	// seed the filter with the first frame to avoid a fade-in
	copy(r.state, r.win[1])
	r.filled[1] = true

	for i := 2; i < len(r.win); i++ {
		got := false
		if !r.eof {
			var err error
			if got, err = r.readFrame(r.win[i]); err != nil {
				return err
			}
		}
		r.filled[i] = got
	}

	return nil
}

// advance shifts the window by one source frame. It returns io.EOF once
// win[1] already holds the last frame.
func (r *Resampler) advance() error {
	if !r.filled[2] {
		return io.EOF
	}

	copy(r.win[0], r.win[1])
	copy(r.win[1], r.win[2])
	copy(r.win[2], r.win[3])
	r.filled[0], r.filled[1], r.filled[2] = r.filled[1], r.filled[2], r.filled[3]
	r.base++

	if r.eof || !r.filled[2] {
		r.filled[3] = false
		return nil
	}

	got, err := r.readFrame(r.win[3])
	if err != nil {
		return err
	}
	r.filled[3] = got
	return nil
}

// ReadSamples produces dst samples at the target rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	dstRate := int64(r.dstRate)
	want := len(dst) / r.channels
	written := 0

	for written < want {
		num := r.out * r.srcRate
		for r.base < num/dstRate {
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		x := float32(num%dstRate) / float32(dstRate)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			y1 := r.win[1][c]
			y0 := y1
			if r.filled[0] {
				y0 = r.win[0][c]
			}
			y2 := y1
			if r.filled[2] {
				y2 = r.win[2][c]
			}
			y3 := y2
			if r.filled[3] {
				y3 = r.win[3][c]
			}
			out[c] = catmullRom(y0, y1, y2, y3, x)
		}

		written++
		r.out++
	}

	return written * r.channels, nil
}

// Resample converts buf to dstRate and returns a new buffer.
func Resample(buf *SampleBuffer, dstRate int) (*SampleBuffer, error) {
	if dstRate <= 0 {
		return nil, invalidParam("target sample rate must be > 0, got %d", dstRate)
	}
	if buf.SampleRate() == dstRate {
		return buf, nil
	}
	if buf.Len() == 0 {
		return NewSilentBuffer(dstRate, buf.Channels(), 0)
	}

	return ReadAll(NewResampler(buf.Reader(), dstRate))
}

// ResampledLen is the number of frames a Resampler produces from a source of
// frames frames at srcRate when converting to dstRate.
func ResampledLen(frames, srcRate, dstRate int) int {
	if frames <= 0 || srcRate <= 0 || dstRate <= 0 {
		return 0
	}
	if srcRate == dstRate {
		return frames
	}

	n := int64(frames) * int64(dstRate)
	return int((n + int64(srcRate) - 1) / int64(srcRate))
}

// catmullRom interpolates between y1 and y2 at fraction x in [0, 1], with
// y0 and y3 as the outer neighbours.
func catmullRom(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
