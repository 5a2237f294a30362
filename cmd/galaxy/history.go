package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent viewing sessions",
	Long: `Display the most recent terminal, window and SSH sessions.

Examples:
  galaxy history
  galaxy history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'galaxy run' to start one!")
		return nil
	}

	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		user := s.User
		if user == "" {
			user = "-"
		}
		rows[i] = table.Row{
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Mode,
			user,
			strconv.Itoa(s.Levels),
			(time.Duration(s.Duration) * time.Second).String(),
		}
	}

	printTable([]table.Column{
		{Title: "Date", Width: 16},
		{Title: "Mode", Width: 6},
		{Title: "User", Width: 12},
		{Title: "Levels", Width: 6},
		{Title: "Duration", Width: 10},
	}, rows)
	return nil
}
