package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxy/internal/platform/window"
)

var (
	flagWinWidth  int
	flagWinHeight int
	flagWinScale  float64
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Watch the galaxy in a desktop window",
	Long: `Open a resizable desktop window showing the galaxy.

Controls:
  Right/L/Tab  - Next level
  Left/H       - Previous level
  Space        - Jump
  R            - Reverse direction
  P            - Pause
  D            - Redraw
  Q/Esc        - Quit

Examples:
  galaxy window
  galaxy window --width 1920 --height 1080
  galaxy window --scale 0.5 --preset high`,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWinWidth, "width", 1280, "Initial window width")
	windowCmd.Flags().IntVar(&flagWinHeight, "height", 720, "Initial window height")
	windowCmd.Flags().Float64Var(&flagWinScale, "scale", 1, "Canvas pixels per window pixel")
}

func runWindow(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger("galaxy", false)
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

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err = window.Run(window.Options{
		Width:    flagWinWidth,
		Height:   flagWinHeight,
		Scale:    flagWinScale,
		TickRate: flagFPS,
		Engine:   s.engine,
		Catalog:  s.catalog(store, logger),
		Jump:     j,
		Seed:     flagSeed,
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
