// SPDX-License-Identifier: EPL-2.0

// Package analysis measures rendered audio: dominant frequency per channel
// and amplitude levels.
//
// Spectra are computed with github.com/MeKo-Christian/algo-fft over a Hann
// window. The FFT length is the next power of two of the input, up to
// MaxFFTSize; longer signals are averaged segment by segment, so a whole
// episode can be analyzed without a giant transform.
//
//	report, err := analysis.Analyze(buf)
//	for _, ch := range report.Channels {
//	    fmt.Printf("ch%d %.1f Hz peak %.2f dBFS\n", ch.Channel, ch.PeakHz, ch.PeakDBFS())
//	}
package analysis
