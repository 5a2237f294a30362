package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-galaxy/internal/platform/tui"
	"github.com/vovakirdan/tui-galaxy/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the galaxy SSH server",
	Long: `Start an SSH server that shows the galaxy to every connecting user.

Each SSH connection gets its own engine sized to its terminal.
Stored palettes are shared by all sessions, and every session is recorded
in the history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.galaxy/host_key

Examples:
  galaxy serve                           # Listen on :23234 with auto-generated key
  galaxy serve --ssh :2222               # Listen on port 2222
  galaxy serve --host-key ./my_host_key  # Use specific host key
  galaxy serve --preset low --fps 20     # Cheaper frames for many viewers

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger("galaxy-ssh", false)
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

	// The catalog is read once at startup from its own connection.
	var catalogStore *storage.Store
	if st, openErr := storage.Open(flagDBPath); openErr == nil {
		catalogStore = st
	}
	catalog := s.catalog(catalogStore, logger)
	if catalogStore != nil {
		catalogStore.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Viewer: tui.Options{
			Engine:  s.engine,
			Catalog: catalog,
			Jump:    j,
		},
		Logger: logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting galaxy SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
