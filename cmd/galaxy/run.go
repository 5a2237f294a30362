package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/platform/tui"
)

var flagSupersample int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the galaxy in this terminal",
	Long: `Render the galaxy in the terminal using half-block characters.
A truecolor terminal gives the best result.

Controls:
  Right/L/Tab    - Next level
  Left/H         - Previous level
  Space          - Jump
  R              - Reverse direction
  P              - Pause
  D              - Redraw (new stars and nebulae)
  Ctrl+S         - Save a PNG screenshot to ~/.galaxy/screenshots
  ?              - Toggle help
  Q/Esc/Ctrl+C   - Quit

Examples:
  galaxy run
  galaxy run --preset low --fps 30
  galaxy run --supersample 4
  galaxy run --config ./my-galaxy.yaml --log-file galaxy.log`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagSupersample, "supersample", tui.DefaultSupersample, "Canvas pixels per cell column")
}

func runRun(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger("galaxy", true)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := loadSettings()
	if err != nil {
		return err
	}
	j, err := jump()
	if err != nil {
		return err
	}

	// Continue without storage - the viewer still works
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.Options{
		Engine:      s.engine,
		Catalog:     s.catalog(store, logger),
		Jump:        j,
		Supersample: flagSupersample,
		Store:       store,
		Mode:        "tui",
		Logger:      logger,
	}

	if err := tui.Run(cfg, opts); err != nil {
		return fmt.Errorf("running galaxy: %w", err)
	}
	return nil
}
