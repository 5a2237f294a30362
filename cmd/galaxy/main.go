// galaxy renders an animated starfield and nebula background in the
// terminal, over SSH, in a desktop window or to a PNG file.
//
// Usage:
//
//	galaxy run               - Watch the galaxy in this terminal
//	galaxy window            - Watch the galaxy in a desktop window
//	galaxy serve             - Start SSH server for remote viewing
//	galaxy render            - Render a frame to a PNG file
//	galaxy palettes          - List or edit level palettes
//	galaxy easings           - List jump easing functions
//	galaxy history           - Show recent viewing sessions
//
// Global flags:
//
//	--fps <rate>       - Host tick rate (default: 60)
//	--seed <value>     - RNG seed for reproducible scenes
//	--db <path>        - Database path (default: ~/.galaxy/galaxy.db)
//	--config <path>    - Custom galaxy.yaml
//	--preset <name>    - Performance preset: low, normal, high, static
//	--log-level <lvl>  - debug, info, warn or error
//	--log-file <path>  - Write logs to a file
//	--ease <name>      - Easing of the level-change jump
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxy/internal/storage"
	"github.com/vovakirdan/tui-galaxy/internal/viewer"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
	flagEase     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "galaxy",
	Short: "Galaxy - an animated starfield for your terminal",
	Long: `Galaxy draws a procedural field of drifting stars and glowing nebula
patches. Each level has its own palette; switching levels fades the colours
while the stars jump forward.

Available commands:
  run       - Watch the galaxy in this terminal
  window    - Watch the galaxy in a desktop window
  serve     - Start SSH server for remote viewing
  render    - Render a frame to a PNG file
  palettes  - List or edit level palettes
  easings   - List jump easing functions
  history   - Show recent viewing sessions

Examples:
  galaxy run
  galaxy run --preset low
  galaxy render --out galaxy.png --after 3s
  galaxy serve --ssh :2222
  galaxy palettes set 2 "#0b6e4f" "#2ec4b6" "#cbf3f0"`,

	// main reports errors once, after deferred cleanup has run
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to palette and session database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom galaxy.yaml")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Performance preset: low, normal, high, static (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagEase, "ease", viewer.DefaultJumpEase, "Easing of the level-change jump (see 'galaxy easings')")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(palettesCmd)
	rootCmd.AddCommand(easingsCmd)
	rootCmd.AddCommand(historyCmd)
}
