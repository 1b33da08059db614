// SPDX-License-Identifier: EPL-2.0

package podmix

import (
	"fmt"

	"github.com/ik5/podmix/audio"
)

// Conform drains src through a resampler to rate and, when mono is set, a
// channel-averaging mixer, and returns the result as a buffer. Stages that
// would not change anything are skipped. src is not closed.
//
// The pipeline is streaming, so only the converted audio is held in
// memory:
//
//	src -> Resampler(rate) -> MonoMixer -> ReadAll
//
// Example:
//
//	src, _ := mp3.Decoder{}.Decode(file)
//	buf, err := podmix.Conform(src, 16000, true)
func Conform(src audio.Source, rate int, mono bool) (*audio.SampleBuffer, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: target sample rate must be > 0, got %d", audio.ErrInvalidParameter, rate)
	}

	pipeline := src
	if src.SampleRate() != rate {
		pipeline = audio.NewResampler(pipeline, rate)
	}
	if mono && src.Channels() > 1 {
		pipeline = audio.NewMonoMixer(pipeline)
	}

	buf, err := audio.ReadAll(pipeline)
	if err != nil {
		return nil, fmt.Errorf("conform to %d Hz: %w", rate, err)
	}
	return buf, nil
}
