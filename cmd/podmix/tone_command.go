// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/internal/fileutil"
	"github.com/ik5/podmix/settings"
	"github.com/ik5/podmix/tone"
	"github.com/ik5/podmix/wizard"
)

const defaultToneRate = 44100

func newToneCommand(ctx *commandContext) *cobra.Command {
	var (
		output     string
		tf         toneFlags
		duration   time.Duration
		sampleRate int
		gain       float64
	)

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Write a tone on its own as a stereo WAV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			target, err := outputPath(output)
			if err != nil {
				return err
			}

			spec, err := tf.explicit(cmd)
			if err != nil {
				return err
			}

			rate := cfg.Audio.SampleRate
			if cmd.Flags().Changed("sample-rate") || rate == 0 {
				rate = sampleRate
			}

			name := ""
			if spec == nil {
				name = strings.TrimSpace(tf.preset)
				if name == "" {
					name = cfg.Tone.Preset
				}
				if name == "" {
					return errors.New("no tone given: use --preset, --tone-hz or --binaural")
				}
				err := ctx.withStore(func(store settings.Store) error {
					p, err := wizard.ResolvePreset(cmd.Context(), store, name)
					if err != nil {
						return err
					}
					spec, name = p.Spec, p.Name
					return nil
				})
				if err != nil {
					return err
				}
			}

			buf, err := renderTone(spec, duration, rate, gain)
			if err != nil {
				return err
			}

			logger.Info("tone rendered",
				slog.String("tone", spec.String()),
				slog.Duration("duration", buf.Duration()),
				slog.Int("sample_rate", rate),
			)

			err = fileutil.WriteAtomic(cmd.Context(), target, func(w io.Writer) error {
				return wav.Encode(w, buf)
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}

			label := spec.String()
			if name != "" {
				label = name + ", " + label
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s; %s)\n", target, label, describeBuffer(buf))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output WAV path")
	tf.register(cmd)
	cmd.Flags().DurationVarP(&duration, "duration", "d", 10*time.Second, "Length of the tone")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", defaultToneRate, "Sample rate; audio.sample_rate wins when set and this flag is not")
	cmd.Flags().Float64Var(&gain, "gain", 1, "Amplitude of the tone, 0 to 1")

	return cmd
}

// renderTone generates spec scaled by gain.
func renderTone(spec tone.Spec, duration time.Duration, rate int, gain float64) (*audio.SampleBuffer, error) {
	if !(gain >= 0 && gain <= 1) {
		return nil, fmt.Errorf("--gain must be between 0 and 1, got %g", gain)
	}

	buf, err := tone.Generate(spec, duration, rate)
	if err != nil {
		return nil, err
	}
	if gain == 1 {
		return buf, nil
	}
	return audio.Mix(audio.MixSpec{Tracks: []audio.Track{{Buffer: buf, Gain: float32(gain)}}})
}
