package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in each search location.
const FileName = "galaxy.yaml"

// Load loads the galaxy configuration.
// Search order: customPath -> ~/.galaxy/galaxy.yaml -> ./configs/galaxy.yaml -> embedded default
func Load(customPath string) (File, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return File{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return File{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultGalaxyYAML)
	if err != nil {
		return DefaultFile(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes galaxy.yaml. Fields missing from data keep their defaults.
func Parse(data []byte) (File, error) {
	cfg := DefaultFile()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, err
	}

	preset, err := ParsePreset(string(cfg.Preset))
	if err != nil {
		return File{}, err
	}
	cfg.Preset = preset

	for i, p := range cfg.Palettes {
		if p.Main == "" {
			return File{}, fmt.Errorf("palette %d (level %d) has no main colour", i, p.Level)
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".galaxy", filename)
}
