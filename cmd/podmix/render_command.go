// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/internal/fileutil"
	"github.com/ik5/podmix/settings"
	"github.com/ik5/podmix/wizard"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		output      string
		tf          toneFlags
		noTone      bool
		toneGain    float64
		ambientPath string
		ambientGain float64
		sampleRate  int
		mono        bool
	)

	cmd := &cobra.Command{
		Use:   "render INPUT",
		Short: "Mix a tone and ambience under a voice recording",
		Long: `Render decodes INPUT (WAV, MP3, Ogg Vorbis or AIFF), layers the chosen tone
and ambient track under it and writes a 16-bit PCM WAV.

Without a tone flag the tone.preset from the configuration is used.`,
		Args: cobra.ExactArgs(1),
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

			explicit, err := tf.explicit(cmd)
			if err != nil {
				return err
			}

			voice, err := podmix.DecodeFile(args[0])
			if err != nil {
				return err
			}

			opts := []wizard.Option{
				wizard.WithToneGain(cfg.Tone.Gain),
				wizard.WithSampleRate(cfg.Audio.SampleRate),
				wizard.WithMono(cfg.Audio.Mono || mono),
			}

			switch {
			case noTone:
				opts = append(opts, wizard.WithTone(nil))
			case explicit != nil:
				opts = append(opts, wizard.WithTone(explicit))
			case strings.TrimSpace(tf.preset) != "":
				opts = append(opts, wizard.WithPreset(tf.preset))
			case cfg.Tone.Preset != "":
				opts = append(opts, wizard.WithPreset(cfg.Tone.Preset))
			}

			if cmd.Flags().Changed("tone-gain") {
				opts = append(opts, wizard.WithToneGain(toneGain))
			}
			if cmd.Flags().Changed("sample-rate") {
				opts = append(opts, wizard.WithSampleRate(sampleRate))
			}

			if ambientPath != "" {
				ambient, err := podmix.DecodeFile(ambientPath)
				if err != nil {
					return err
				}
				gain := cfg.Ambient.Gain
				if cmd.Flags().Changed("ambient-gain") {
					gain = ambientGain
				}
				opts = append(opts, wizard.WithAmbient(ambient, gain))
			}

			return ctx.withStore(func(store settings.Store) error {
				return runRender(cmd, logger, store, voice, opts, target)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output WAV path")
	tf.register(cmd)
	cmd.Flags().BoolVar(&noTone, "no-tone", false, "Do not add a tone, even if tone.preset is configured")
	cmd.Flags().Float64Var(&toneGain, "tone-gain", 0, "Tone gain, overriding tone.gain and user preset gains")
	cmd.Flags().StringVar(&ambientPath, "ambient", "", "Ambient track looped under the voice")
	cmd.Flags().Float64Var(&ambientGain, "ambient-gain", 0, "Ambient gain, overriding ambient.gain")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", 0, "Output sample rate; 0 keeps the input's rate")
	cmd.Flags().BoolVar(&mono, "mono", false, "Downmix the output to one channel")
	cmd.MarkFlagsMutuallyExclusive("no-tone", "preset", "tone-hz", "binaural")

	return cmd
}

func runRender(cmd *cobra.Command, logger *slog.Logger, store settings.Store, voice *audio.SampleBuffer, opts []wizard.Option, target string) error {
	session := wizard.New(logger, store)
	if err := session.SelectInput(voice); err != nil {
		return err
	}
	if err := session.Configure(cmd.Context(), opts...); err != nil {
		return err
	}

	err := fileutil.WriteAtomic(cmd.Context(), target, func(w io.Writer) error {
		return session.Export(cmd.Context(), w)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}

	mix := session.Config()
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (tone: %s)\n", target, toneLabel(mix))
	return nil
}

func toneLabel(mix wizard.MixConfig) string {
	switch {
	case mix.PresetName != "":
		return fmt.Sprintf("%s, %s", mix.PresetName, mix.Tone)
	case mix.Tone != nil:
		return mix.Tone.String()
	default:
		return "none"
	}
}
