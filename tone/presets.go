// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned by LookupPreset for names it does not know.
var ErrUnknownPreset = errors.New("unknown tone preset")

// Preset is a named tone.
type Preset struct {
	Name        string
	Description string
	Spec        Spec
}

var presets = []Preset{
	{Name: "432", Description: "432 Hz pure tone", Spec: Pure{FrequencyHz: 432}},
	{Name: "528", Description: "528 Hz pure tone", Spec: Pure{FrequencyHz: 528}},
	{Name: "639", Description: "639 Hz pure tone", Spec: Pure{FrequencyHz: 639}},
	{Name: "741", Description: "741 Hz pure tone", Spec: Pure{FrequencyHz: 741}},
	{Name: "gamma", Description: "40 Hz beat over 200 Hz", Spec: Binaural{BaseHz: 200, BeatOffsetHz: 40}},
	{Name: "alpha", Description: "10 Hz beat over 150 Hz", Spec: Binaural{BaseHz: 150, BeatOffsetHz: 10}},
	{Name: "theta", Description: "6 Hz beat over 100 Hz", Spec: Binaural{BaseHz: 100, BeatOffsetHz: 6}},
	{Name: "delta", Description: "3 Hz beat over 100 Hz", Spec: Binaural{BaseHz: 100, BeatOffsetHz: 3}},
}

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a built-in preset by name, ignoring case and an
// optional "hz" suffix ("528Hz" finds "528").
func LookupPreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimSpace(strings.TrimSuffix(key, "hz"))

	for _, p := range presets {
		if p.Name == key {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
