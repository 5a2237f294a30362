package core

// Terminal cells are treated as 8x16 logical pixels so that nebula radii
// tuned for browser-sized viewports keep their proportions in a terminal.
const (
	CellWidth  = 8
	CellHeight = 16
)

// RuntimeConfig contains configuration passed to hosts at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frame callbacks per second (default 60)
	Seed     int64 // RNG seed for deterministic scenes
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
