package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
)

// withFlags sets global flags for one test and restores them afterwards.
func withFlags(t *testing.T, config, preset, level, ease string) {
	t.Helper()
	old := []string{flagConfig, flagPreset, flagLogLevel, flagEase}
	flagConfig, flagPreset, flagLogLevel, flagEase = config, preset, level, ease
	t.Cleanup(func() {
		flagConfig, flagPreset, flagLogLevel, flagEase = old[0], old[1], old[2], old[3]
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "galaxy.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestLoadSettingsPresetFromFile(t *testing.T) {
	path := writeConfig(t, "preset: low\nengine:\n  star_count: 900\n")
	withFlags(t, path, "", "info", "linear")

	s, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings() error: %v", err)
	}
	// The preset wins over the engine section
	if s.engine.StarCount != 400 || s.engine.TargetFPS != 20 {
		t.Errorf("engine = %d stars @ %d fps, expected low preset", s.engine.StarCount, s.engine.TargetFPS)
	}
}

func TestLoadSettingsPresetFlagOverrides(t *testing.T) {
	path := writeConfig(t, "preset: low\n")
	withFlags(t, path, "static", "info", "linear")

	s, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings() error: %v", err)
	}
	if !s.engine.Static {
		t.Errorf("--preset static not applied")
	}
	if s.engine.StarCount != galaxy.DefaultConfig().StarCount {
		t.Errorf("StarCount = %d, expected default", s.engine.StarCount)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	withFlags(t, writeConfig(t, "preset: turbo\n"), "", "info", "linear")
	if _, err := loadSettings(); err == nil {
		t.Errorf("unknown preset in file should fail")
	}

	withFlags(t, "", "turbo", "info", "linear")
	if _, err := loadSettings(); err == nil {
		t.Errorf("unknown --preset should fail")
	}
}

func TestNewLogger(t *testing.T) {
	withFlags(t, "", "", "loud", "linear")
	if _, _, err := newLogger("galaxy", false); err == nil {
		t.Errorf("invalid level should fail")
	}

	withFlags(t, "", "", "debug", "linear")
	logger, closer, err := newLogger("galaxy", true)
	if err != nil {
		t.Fatalf("newLogger() error: %v", err)
	}
	defer closer.Close()
	logger.Debug("discarded")
}

func TestJumpFlag(t *testing.T) {
	withFlags(t, "", "", "info", "ease-in-out-quart")
	j, err := jump()
	if err != nil {
		t.Fatalf("jump() error: %v", err)
	}
	if j.Ease(0.5) != 0.5 {
		t.Errorf("ease-in-out-quart(0.5) = %v, expected 0.5", j.Ease(0.5))
	}

	withFlags(t, "", "", "info", "wobble")
	if _, err := jump(); err == nil {
		t.Errorf("unknown easing should fail")
	}
}

func TestCommandsReturnErrors(t *testing.T) {
	withFlags(t, "", "turbo", "info", "linear")
	oldFile := flagLogFile
	flagLogFile = filepath.Join(t.TempDir(), "galaxy.log")
	t.Cleanup(func() { flagLogFile = oldFile })

	// The log file is opened first, so these exercise the deferred close.
	if err := runRender(nil, nil); err == nil {
		t.Errorf("render with an unknown preset should fail")
	}
	if err := runWindow(nil, nil); err == nil {
		t.Errorf("window with an unknown preset should fail")
	}
	if _, err := os.Stat(flagLogFile); err != nil {
		t.Errorf("log file not created: %v", err)
	}

	if err := runPalettesSet(nil, []string{"2", "#zzz"}); err == nil {
		t.Errorf("invalid colour should fail")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"two", 0, true},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLevel(%q) = %d, %v", tt.in, got, err)
		}
	}
}
