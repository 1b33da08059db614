// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/internal/fileutil"
)

// speechRate is the usual rate for transcription and telephony pipelines.
const speechRate = 16000

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		output     string
		sampleRate int
		mono       bool
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT",
		Short: "Resample any supported file to a 16-bit PCM WAV",
		Long: `Convert decodes INPUT and writes it as a 16-bit PCM WAV at --sample-rate,
downmixed to one channel unless --mono=false is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := outputPath(output)
			if err != nil {
				return err
			}
			if sampleRate <= 0 {
				return fmt.Errorf("--sample-rate must be positive, got %d", sampleRate)
			}

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			in, err := podmix.DecodeFile(args[0])
			if err != nil {
				return err
			}

			out, err := podmix.Conform(in.Reader(), sampleRate, mono)
			if err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}
			logger.Debug("converted",
				slog.Int("from_rate", in.SampleRate()),
				slog.Int("from_channels", in.Channels()),
				slog.Int("frames", out.Len()),
			)

			err = fileutil.WriteAtomic(cmd.Context(), target, func(w io.Writer) error {
				return wav.Encode(w, out)
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", target, describeBuffer(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output WAV path")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", speechRate, "Output sample rate")
	cmd.Flags().BoolVar(&mono, "mono", true, "Downmix to one channel")

	return cmd
}
