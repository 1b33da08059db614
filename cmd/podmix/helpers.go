// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/internal/config"
	"github.com/ik5/podmix/tone"
)

// toneFlags are the mutually exclusive ways of naming a tone.
type toneFlags struct {
	preset   string
	hz       float64
	binaural string
}

func (f *toneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Tone preset name (user or built-in)")
	cmd.Flags().Float64Var(&f.hz, "tone-hz", 0, "Pure tone frequency in Hz")
	cmd.Flags().StringVar(&f.binaural, "binaural", "", "Binaural tone as BASE:OFFSET in Hz, for example 200:40")
	cmd.MarkFlagsMutuallyExclusive("preset", "tone-hz", "binaural")
}

// explicit returns the tone given by --tone-hz or --binaural, or nil when
// neither was set.
func (f *toneFlags) explicit(cmd *cobra.Command) (tone.Spec, error) {
	switch {
	case cmd.Flags().Changed("binaural"):
		return parseBinaural(f.binaural)
	case cmd.Flags().Changed("tone-hz"):
		if err := checkHz("--tone-hz", f.hz); err != nil {
			return nil, err
		}
		return tone.Pure{FrequencyHz: f.hz}, nil
	}
	return nil, nil
}

// parseBinaural reads "BASE:OFFSET", both in Hz.
func parseBinaural(value string) (tone.Spec, error) {
	baseText, offsetText, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return nil, fmt.Errorf("--binaural: want BASE:OFFSET, got %q", value)
	}

	base, err := strconv.ParseFloat(strings.TrimSpace(baseText), 64)
	if err != nil {
		return nil, fmt.Errorf("--binaural base: %w", err)
	}
	offset, err := strconv.ParseFloat(strings.TrimSpace(offsetText), 64)
	if err != nil {
		return nil, fmt.Errorf("--binaural offset: %w", err)
	}

	if err := checkHz("--binaural base", base); err != nil {
		return nil, err
	}
	if err := checkHz("--binaural right channel", base+offset); err != nil {
		return nil, err
	}
	return tone.Binaural{BaseHz: base, BeatOffsetHz: offset}, nil
}

func checkHz(name string, hz float64) error {
	if !(hz > 0) || math.IsInf(hz, 0) {
		return fmt.Errorf("%s must be a positive frequency, got %g", name, hz)
	}
	return nil
}

// outputPath resolves the -o flag the way config paths are resolved.
func outputPath(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("--output is required")
	}
	return config.ExpandPath(value)
}

func unknownOutputError(format string) error {
	return fmt.Errorf("--output-format: unsupported value %q (want auto, table or tsv)", format)
}

func describeBuffer(buf *audio.SampleBuffer) string {
	channels := "channels"
	if buf.Channels() == 1 {
		channels = "channel"
	}
	return fmt.Sprintf("%s, %d Hz, %d %s",
		formatDuration(buf.Duration()), buf.SampleRate(), buf.Channels(), channels)
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func formatGain(g float64) string {
	return strconv.FormatFloat(g, 'f', -1, 64)
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(db, 'f', 1, 64)
}
