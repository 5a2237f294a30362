package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
)

//go:embed defaults/galaxy.yaml
var defaultGalaxyYAML []byte

// DefaultFile returns the hard-coded configuration, used when even the
// embedded YAML cannot be parsed.
func DefaultFile() File {
	return File{
		Preset: PresetNormal,
		Engine: galaxy.DefaultConfig(),
		Palettes: []LevelPalette{
			{
				Level: 1,
				Name:  "Nebula",
				Main:  "rgba(60, 0, 150, 1)",
				Side:  []string{"rgba(200, 50, 100, 1)", "rgba(0, 180, 255, 1)", "rgba(255, 120, 0, 1)"},
			},
			{Level: 2, Name: "Aurora", Main: "#0b6e4f", Side: []string{"#21d19f", "#3a86ff", "#c2f970"}},
			{Level: 3, Name: "Ember", Main: "#8b1e3f", Side: []string{"#ff6b35", "#f7c59f", "#ffd23f"}},
			{Level: 4, Name: "Abyss", Main: "#03045e", Side: []string{"#0077b6", "#00b4d8", "#90e0ef"}},
			{Level: 5, Name: "Bloom", Main: "#6a0572", Side: []string{"#ff77e9", "#ffd6ff", "#9bf6ff"}},
		},
	}
}

// DefaultYAML returns the embedded default galaxy.yaml.
func DefaultYAML() []byte {
	return defaultGalaxyYAML
}
