// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Track is one input of a mix: a buffer and the linear gain applied to it.
type Track struct {
	Buffer *SampleBuffer
	Gain   float32
}

// MixSpec describes a mix. Tracks[0] is the primary: its length and channel
// count define the output. Every other track is looped to fill that length.
//
// SampleRate is the output rate; zero keeps the primary's rate. Tracks at a
// different rate are resampled before mixing.
type MixSpec struct {
	Tracks     []Track
	SampleRate int
}

// Duration of the mix output: the primary track's length once resampled to
// the output rate.
func (s MixSpec) Duration() time.Duration {
	if len(s.Tracks) == 0 || s.Tracks[0].Buffer == nil {
		return 0
	}

	primary := s.Tracks[0].Buffer
	rate := s.outputRate()
	frames := ResampledLen(primary.Len(), primary.SampleRate(), rate)

	return time.Duration(frames) * time.Second / time.Duration(rate)
}

func (s MixSpec) outputRate() int {
	if s.SampleRate > 0 {
		return s.SampleRate
	}
	return s.Tracks[0].Buffer.SampleRate()
}

// Mix sums all tracks of spec into a new buffer:
//
//	out[c][i] = Σ track.Buffer[min(c, ch-1)][i mod len] * track.Gain
//
// Secondary channels beyond the primary's count are dropped; a secondary
// with fewer channels repeats its last channel. Zero-length secondaries
// contribute nothing. Samples are not clipped here; out-of-range values
// are left for the encoder to clip.
func Mix(spec MixSpec) (*SampleBuffer, error) {
	if len(spec.Tracks) == 0 {
		return nil, invalidParam("mix needs at least one track")
	}
	for i, t := range spec.Tracks {
		if t.Buffer == nil {
			return nil, invalidParam("track %d has no buffer", i)
		}
	}

	rate := spec.outputRate()
	tracks := make([]Track, len(spec.Tracks))
	for i, t := range spec.Tracks {
		if t.Buffer.SampleRate() == rate {
			tracks[i] = t
			continue
		}

		resampled, err := Resample(t.Buffer, rate)
		if err != nil {
			return nil, fmt.Errorf("resample track %d: %w", i, err)
		}
		tracks[i] = Track{Buffer: resampled, Gain: t.Gain}
	}

	primary := tracks[0].Buffer
	frames := primary.Len()
	channels := primary.Channels()

	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
	}

	for _, t := range tracks {
		src := t.Buffer
		n := src.Len()
		if n == 0 || t.Gain == 0 {
			continue
		}

		last := src.Channels() - 1
		for c := range channels {
			in := src.data[min(c, last)]
			dst := out[c]

			if n >= frames {
				// no wrap needed
				for i := range frames {
					dst[i] += in[i] * t.Gain
				}
				continue
			}

			for i := range frames {
				dst[i] += in[i%n] * t.Gain
			}
		}
	}

	return NewSampleBuffer(rate, out)
}
