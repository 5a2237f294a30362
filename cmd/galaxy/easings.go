package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxy/internal/registry"
	"github.com/vovakirdan/tui-galaxy/internal/viewer"
)

var easingsCmd = &cobra.Command{
	Use:   "easings",
	Short: "List jump easing functions",
	Long:  `Shows the easing functions that can be passed to --ease.`,
	Run:   runEasings,
}

func runEasings(_ *cobra.Command, _ []string) {
	easings := registry.List()

	if len(easings) == 0 {
		fmt.Println("No easings available.")
		return
	}

	fmt.Println("Available easings:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range easings {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, e := range easings {
		marker := ""
		if e.ID == viewer.DefaultJumpEase {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, e.ID, e.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'galaxy run --ease <id>' to change the level jump.")
}
