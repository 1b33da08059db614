// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/analysis"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Show the dominant frequency and levels of each channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := podmix.DecodeFile(args[0])
			if err != nil {
				return err
			}

			report, err := analysis.Analyze(buf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, %d frames\n", args[0], describeBuffer(buf), report.Frames)

			headers := []string{"Channel", "Peak Hz", "Peak dBFS", "RMS dBFS", "Clipped"}
			rows := make([][]string, 0, len(report.Channels))
			for _, ch := range report.Channels {
				rows = append(rows, []string{
					strconv.Itoa(ch.Channel),
					formatHz(ch.PeakHz),
					formatDB(ch.PeakDBFS()),
					formatDB(ch.RMSDBFS()),
					strconv.Itoa(ch.Clipped),
				})
			}
			aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight}
			return writeRows(out, outputFormat, headers, rows, aligns)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output-format", outputAuto, "Output format: auto, table or tsv")

	return cmd
}

func formatHz(hz float64) string {
	if hz == 0 {
		return "-"
	}
	return strconv.FormatFloat(hz, 'f', 1, 64)
}
