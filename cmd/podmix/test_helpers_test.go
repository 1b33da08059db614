// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/audio"
	"github.com/ik5/podmix/formats/wav"
)

// cliEnv isolates HOME so the settings database and default config path
// land in a temp directory.
type cliEnv struct {
	dir        string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &cliEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "podmix.toml"),
	}
}

func (e *cliEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

func (e *cliEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(e.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// writeVoice writes a quiet mono 220 Hz WAV standing in for a voice track.
func writeVoice(t *testing.T, path string, rate, frames int) {
	t.Helper()
	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = float32(0.05 * math.Sin(2*math.Pi*220*float64(i)/float64(rate)))
	}
	buf, err := audio.NewSampleBuffer(rate, [][]float32{samples})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := wav.Encode(&out, buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func decodeFile(t *testing.T, path string) *audio.SampleBuffer {
	t.Helper()
	buf, err := podmix.DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile(%s): %v", path, err)
	}
	return buf
}
