package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxy/internal/config"
	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/storage"
)

var flagPaletteName string

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List or edit level palettes",
	Long: `Level palettes come from galaxy.yaml. Palettes stored in the database
override the configured ones by level number.

Examples:
  galaxy palettes list
  galaxy palettes set 2 "#0b6e4f" "#2ec4b6" "#cbf3f0" --name Lagoon
  galaxy palettes set 9 "rgb(255, 0, 90)"
  galaxy palettes reset 2
  galaxy palettes reset`,
}

var palettesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the level palettes in use",
	Args:  cobra.NoArgs,
	RunE:  runPalettesList,
}

var palettesSetCmd = &cobra.Command{
	Use:   "set <level> <main> [side...]",
	Short: "Store a palette for a level",
	Long: `Store the main colour and up to three side colours for a level.
Colours accept #RGB, #RGBA, #RRGGBB, #RRGGBBAA, rgb() and rgba().`,
	Args: cobra.RangeArgs(2, 5),
	RunE: runPalettesSet,
}

var palettesResetCmd = &cobra.Command{
	Use:   "reset [level]",
	Short: "Remove stored palettes (all levels when none given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPalettesReset,
}

func init() {
	palettesSetCmd.Flags().StringVar(&flagPaletteName, "name", "", "Palette name (keeps the configured name when empty)")

	palettesCmd.AddCommand(palettesListCmd)
	palettesCmd.AddCommand(palettesSetCmd)
	palettesCmd.AddCommand(palettesResetCmd)
}

// requireStore opens the database the command cannot work without.
func requireStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

func parseLevel(s string) (int, error) {
	level, err := strconv.Atoi(s)
	if err != nil || level < 1 {
		return 0, fmt.Errorf("level must be a positive number, got %q", s)
	}
	return level, nil
}

func runPalettesList(_ *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stored, err := store.Palettes()
	if err != nil {
		return fmt.Errorf("retrieving palettes: %w", err)
	}
	isStored := make(map[int]bool, len(stored))
	for _, p := range stored {
		isStored[p.Level] = true
	}

	catalog := config.NewCatalog(s.file.Palettes, stored)
	rows := make([]table.Row, 0, catalog.Len())
	for _, p := range catalog.All() {
		source := "config"
		if isStored[p.Level] {
			source = "stored"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(p.Level),
			p.Name,
			p.Main,
			strings.Join(p.Side, " "),
			source,
		})
	}

	if len(rows) == 0 {
		fmt.Println("No palettes configured.")
		return nil
	}

	printTable([]table.Column{
		{Title: "Level", Width: 5},
		{Title: "Name", Width: 10},
		{Title: "Main", Width: 22},
		{Title: "Side", Width: 40},
		{Title: "Source", Width: 6},
	}, rows)
	return nil
}

func runPalettesSet(_ *cobra.Command, args []string) error {
	level, err := parseLevel(args[0])
	if err != nil {
		return err
	}

	for _, c := range args[1:] {
		if _, ok := core.ParseColor(c); !ok {
			return fmt.Errorf("invalid colour %q", c)
		}
	}

	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	p := config.LevelPalette{
		Level: level,
		Name:  flagPaletteName,
		Main:  args[1],
		Side:  args[2:],
	}
	if p.Name == "" {
		// Keep the configured name for this level, if any
		if s, err := loadSettings(); err == nil {
			if base, ok := config.NewCatalog(s.file.Palettes, nil).Find(level); ok {
				p.Name = base.Name
			}
		}
	}

	if err := store.SavePalette(p); err != nil {
		return fmt.Errorf("saving palette: %w", err)
	}
	fmt.Printf("Stored palette for level %d.\n", level)
	return nil
}

func runPalettesReset(_ *cobra.Command, args []string) error {
	level := 0
	if len(args) > 0 {
		var err error
		if level, err = parseLevel(args[0]); err != nil {
			return err
		}
	}

	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if level == 0 {
		if err := store.ClearPalettes(); err != nil {
			return fmt.Errorf("clearing palettes: %w", err)
		}
		fmt.Println("Removed all stored palettes.")
		return nil
	}

	removed, err := store.DeletePalette(level)
	if err != nil {
		return fmt.Errorf("removing palette: %w", err)
	}
	if !removed {
		fmt.Printf("No stored palette for level %d.\n", level)
		return nil
	}
	fmt.Printf("Removed stored palette for level %d.\n", level)
	return nil
}
