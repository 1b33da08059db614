// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const maxEmptyReads = 100

// ReadAll drains src into a SampleBuffer. It does not close src.
//
// The read loop:
//  1. Reads BufSize samples at a time (rounded down to whole frames)
//  2. Accumulates the interleaved data
//  3. Stops on io.EOF and deinterleaves the result
//
// Any other error aborts and is returned wrapped; no partial buffer is
// returned.
func ReadAll(src Source) (*SampleBuffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, invalidParam("source reports %d channels", channels)
	}
	if src.SampleRate() <= 0 {
		return nil, invalidParam("source reports sample rate %d", src.SampleRate())
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels
	if bufSize == 0 {
		bufSize = channels
	}

	// ~2 seconds of audio before the first grow
	samples := make([]float32, 0, src.SampleRate()*channels*2)
	buf := make([]float32, bufSize)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("read samples: %w", io.ErrNoProgress)
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
	}

	return Deinterleave(src.SampleRate(), channels, samples)
}
