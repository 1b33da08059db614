// SPDX-License-Identifier: EPL-2.0

package analysis

import "math"

// LevelStats summarises sample amplitudes.
type LevelStats struct {
	Peak    float64 // largest |x|
	RMS     float64
	Clipped int // samples with |x| >= 1, which the encoder saturates
}

// PeakDBFS is Peak in decibels relative to full scale, or -Inf for silence.
func (l LevelStats) PeakDBFS() float64 { return dbfs(l.Peak) }

// RMSDBFS is RMS in decibels relative to full scale, or -Inf for silence.
func (l LevelStats) RMSDBFS() float64 { return dbfs(l.RMS) }

// Levels measures samples. NaN samples are ignored.
func Levels(samples []float32) LevelStats {
	var (
		stats LevelStats
		sum   float64
		n     int
	)

	for _, s := range samples {
		v := float64(s)
		if math.IsNaN(v) {
			continue
		}

		a := math.Abs(v)
		stats.Peak = max(stats.Peak, a)
		if a >= 1 {
			stats.Clipped++
		}
		sum += v * v
		n++
	}

	if n > 0 {
		stats.RMS = math.Sqrt(sum / float64(n))
	}
	return stats
}

func dbfs(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(x)
}
