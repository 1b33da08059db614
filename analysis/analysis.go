// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"fmt"
	"time"

	"github.com/ik5/podmix/audio"
)

// ChannelReport describes one channel of a buffer.
type ChannelReport struct {
	Channel int
	PeakHz  float64 // 0 when the channel is silent or too short
	LevelStats
}

// Report describes a whole buffer.
type Report struct {
	SampleRate int
	Frames     int
	Duration   time.Duration
	Channels   []ChannelReport
}

// Analyze measures every channel of buf.
func Analyze(buf *audio.SampleBuffer) (*Report, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", audio.ErrInvalidParameter)
	}

	report := &Report{
		SampleRate: buf.SampleRate(),
		Frames:     buf.Len(),
		Duration:   buf.Duration(),
		Channels:   make([]ChannelReport, buf.Channels()),
	}

	for c := range report.Channels {
		samples := buf.Channel(c)
		cr := ChannelReport{Channel: c, LevelStats: Levels(samples)}

		if cr.Peak > 0 && len(samples) >= 2 {
			hz, err := PeakFrequency(samples, buf.SampleRate())
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", c, err)
			}
			cr.PeakHz = hz
		}

		report.Channels[c] = cr
	}

	return report, nil
}
