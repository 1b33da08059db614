// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ik5/podmix/settings"
	"github.com/ik5/podmix/tone"
)

func newPresetsCommand(ctx *commandContext) *cobra.Command {
	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage tone presets",
	}

	presetsCmd.AddCommand(newPresetsListCommand(ctx))
	presetsCmd.AddCommand(newPresetsSaveCommand(ctx))
	presetsCmd.AddCommand(newPresetsDeleteCommand(ctx))

	return presetsCmd
}

func newPresetsListCommand(ctx *commandContext) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and user presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store settings.Store) error {
				user, err := store.ListPresets(cmd.Context())
				if err != nil {
					return err
				}

				last, err := store.Setting(cmd.Context(), settings.SettingLastPreset)
				if err != nil && !errors.Is(err, settings.ErrNotFound) {
					return err
				}

				headers := []string{"Name", "Source", "Tone", "Gain", "Last"}
				rows := presetRows(user, settings.NormalizeName(last))
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
				return writeRows(cmd.OutOrStdout(), outputFormat, headers, rows, aligns)
			})
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output-format", outputAuto, "Output format: auto, table or tsv")

	return cmd
}

// presetRows lists user presets first, then the built-ins they do not
// shadow.
func presetRows(user []settings.Preset, last string) [][]string {
	title := cases.Title(language.Und)
	rows := make([][]string, 0, len(user)+len(tone.Presets()))
	shadowed := make(map[string]bool, len(user))

	for _, p := range user {
		shadowed[p.Name] = true
		desc := "invalid"
		if spec, err := p.Spec(); err == nil {
			desc = spec.String()
		}
		rows = append(rows, []string{title.String(p.Name), "user", desc, formatGain(p.Gain), lastMarker(p.Name, last)})
	}

	for _, p := range tone.Presets() {
		if shadowed[p.Name] {
			continue
		}
		rows = append(rows, []string{title.String(p.Name), "built-in", p.Spec.String(), "-", lastMarker(p.Name, last)})
	}

	return rows
}

func lastMarker(name, last string) string {
	if name == last {
		return "*"
	}
	return ""
}

func newPresetsSaveCommand(ctx *commandContext) *cobra.Command {
	var (
		tf   toneFlags
		gain float64
	)

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save a user preset, replacing any preset of the same name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("preset") {
				return errors.New("presets save takes --tone-hz or --binaural")
			}
			spec, err := tf.explicit(cmd)
			if err != nil {
				return err
			}
			if spec == nil {
				return errors.New("presets save needs --tone-hz or --binaural")
			}

			if !cmd.Flags().Changed("gain") {
				gain = cfg.Tone.Gain
			}

			preset, err := settings.FromSpec(args[0], spec, gain)
			if err != nil {
				return err
			}

			return ctx.withStore(func(store settings.Store) error {
				saved, err := store.SavePreset(cmd.Context(), preset)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %s (%s, gain %s)\n", saved.Name, spec, formatGain(saved.Gain))
				return nil
			})
		},
	}

	tf.register(cmd)
	cmd.Flags().Float64Var(&gain, "gain", 0, "Tone gain for this preset; defaults to tone.gain")

	return cmd
}

func newPresetsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a user preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := settings.NormalizeName(args[0])
			return ctx.withStore(func(store settings.Store) error {
				err := store.DeletePreset(cmd.Context(), name)
				if errors.Is(err, settings.ErrNotFound) {
					if _, lerr := tone.LookupPreset(name); lerr == nil {
						return fmt.Errorf("preset %q is built in and cannot be deleted", name)
					}
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %s\n", name)
				return nil
			})
		},
	}
}
