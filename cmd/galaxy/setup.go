package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxy/internal/config"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
	"github.com/vovakirdan/tui-galaxy/internal/registry"
	"github.com/vovakirdan/tui-galaxy/internal/storage"
	"github.com/vovakirdan/tui-galaxy/internal/viewer"
)

// newLogger builds a logger from --log-level and --log-file. Without a log
// file, interactive modes log nowhere so the alt screen stays clean.
func newLogger(prefix string, interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// settings is the resolved configuration shared by all viewer commands.
type settings struct {
	file   config.File
	engine galaxy.Config
}

// loadSettings loads galaxy.yaml and applies the preset and fps flags.
func loadSettings() (settings, error) {
	file, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}

	preset := file.Preset
	if flagPreset != "" {
		if preset, err = config.ParsePreset(flagPreset); err != nil {
			return settings{}, err
		}
	}

	engine := file.Engine
	config.ApplyPreset(&engine, preset)
	return settings{file: file, engine: engine}, nil
}

// openStore opens the database, warning and continuing without it on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// catalog merges stored palette overrides into the configured palettes.
func (s settings) catalog(store *storage.Store, logger *log.Logger) *config.Catalog {
	var overrides []config.LevelPalette
	if store != nil {
		stored, err := store.Palettes()
		if err != nil {
			logger.Warn("could not read stored palettes", "error", err)
		}
		overrides = stored
	}
	return config.NewCatalog(s.file.Palettes, overrides)
}

// jump returns the level-change animation selected by --ease.
func jump() (viewer.Jump, error) {
	if !registry.Exists(flagEase) {
		return viewer.Jump{}, fmt.Errorf("unknown easing %q, run 'galaxy easings' to list them", flagEase)
	}
	j, err := viewer.JumpWithEase(flagEase)
	if err != nil {
		return viewer.Jump{}, fmt.Errorf("invalid --ease: %w", err)
	}
	return j, nil
}
