// Package config provides YAML-based configuration loading for the galaxy:
// engine tunables, level palettes and performance presets.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
)

// File is the layout of galaxy.yaml.
type File struct {
	Preset   Preset         `yaml:"preset"`
	Engine   galaxy.Config  `yaml:"engine"`
	Palettes []LevelPalette `yaml:"palettes"`
}

// LevelPalette is the nebula palette shown for one level.
type LevelPalette struct {
	Level int      `yaml:"level"`
	Name  string   `yaml:"name"`
	Main  string   `yaml:"main"`
	Side  []string `yaml:"side"`
}

// Options returns the engine options that switch to this palette.
func (p LevelPalette) Options() galaxy.Options {
	return galaxy.Options{
		MainColor:  galaxy.Ptr(p.Main),
		SideColors: append([]string(nil), p.Side...),
	}
}

// Preset represents a named performance level.
type Preset string

const (
	PresetLow    Preset = "low"
	PresetNormal Preset = "normal"
	PresetHigh   Preset = "high"
	PresetStatic Preset = "static" // One frame, no animation
)

// Presets lists every known preset.
var Presets = []Preset{PresetLow, PresetNormal, PresetHigh, PresetStatic}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PresetNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q (expected low, normal, high or static)", s)
}

// ApplyPreset modifies the engine config based on a performance preset.
func ApplyPreset(cfg *galaxy.Config, preset Preset) {
	switch preset {
	case PresetLow:
		cfg.StarCount = 400
		cfg.NebulaCount = 10
		cfg.TargetFPS = 20
		cfg.Static = false
	case PresetHigh:
		cfg.StarCount = 2400
		cfg.NebulaCount = 30
		cfg.TargetFPS = 60
		cfg.Static = false
	case PresetStatic:
		cfg.Static = true
	}
}

// Catalog is the ordered list of level palettes, with stored overrides
// merged in.
type Catalog struct {
	palettes []LevelPalette
}

// NewCatalog merges overrides into base by level number. Overrides for
// levels missing from base are appended. The result is ordered by level.
func NewCatalog(base, overrides []LevelPalette) *Catalog {
	byLevel := make(map[int]int, len(base))
	out := make([]LevelPalette, 0, len(base)+len(overrides))
	for _, p := range base {
		if i, ok := byLevel[p.Level]; ok {
			out[i] = p
			continue
		}
		byLevel[p.Level] = len(out)
		out = append(out, p)
	}
	for _, p := range overrides {
		if i, ok := byLevel[p.Level]; ok {
			if p.Name == "" {
				p.Name = out[i].Name
			}
			out[i] = p
			continue
		}
		byLevel[p.Level] = len(out)
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return &Catalog{palettes: out}
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.palettes)
}

// At returns the palette at position i, wrapping in both directions.
// An empty catalog yields the engine's default palette.
func (c *Catalog) At(i int) LevelPalette {
	if len(c.palettes) == 0 {
		def := galaxy.DefaultConfig()
		return LevelPalette{Level: 1, Name: "Default", Main: def.MainColor, Side: def.SideColors}
	}
	n := len(c.palettes)
	return c.palettes[((i%n)+n)%n]
}

// Find returns the palette for a level number.
func (c *Catalog) Find(level int) (LevelPalette, bool) {
	for _, p := range c.palettes {
		if p.Level == level {
			return p, true
		}
	}
	return LevelPalette{}, false
}

// All returns a copy of the catalog.
func (c *Catalog) All() []LevelPalette {
	return append([]LevelPalette(nil), c.palettes...)
}
