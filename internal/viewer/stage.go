// Package viewer wires a galaxy engine to a software canvas and a frame
// loop, and maps viewer actions (level changes, jumps, pause) onto it.
// Terminal, SSH and desktop hosts all build on a Stage and a Controller.
package viewer

import (
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxy/internal/config"
	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
	"github.com/vovakirdan/tui-galaxy/internal/raster"
)

// StageOptions configures a new Stage.
type StageOptions struct {
	Width, Height float64 // Logical viewport
	Ratio         float64 // Device pixels per logical pixel
	Engine        galaxy.Config
	Palette       *config.LevelPalette // Initial colours, overriding Engine's
	Seed          int64
	MinDot        float64 // Minimum star radius in device pixels
	Logger        *log.Logger
	Clock         core.Clock
}

// Stage is one engine drawing into its own canvas, driven by its own loop.
type Stage struct {
	Engine *galaxy.Engine
	Canvas *raster.Canvas
	Loop   *core.Loop
	Window *core.Window
}

// NewStage builds the engine and binds it. The engine is not started.
func NewStage(o StageOptions) *Stage {
	cfg := o.Engine
	if o.Palette != nil {
		cfg.MainColor = o.Palette.Main
		cfg.SideColors = append([]string(nil), o.Palette.Side...)
	}

	s := &Stage{
		Canvas: raster.New(0, 0, raster.WithMinDotRadius(o.MinDot)),
		Loop:   core.NewLoop(),
		Window: core.NewWindow(o.Width, o.Height, o.Ratio),
	}

	opts := []galaxy.Option{galaxy.WithConfig(cfg), galaxy.WithSeed(o.Seed)}
	if o.Logger != nil {
		opts = append(opts, galaxy.WithLogger(o.Logger))
	}
	if o.Clock != nil {
		opts = append(opts, galaxy.WithClock(o.Clock))
	}
	s.Engine = galaxy.New(s.Canvas, s.Window, s.Loop, opts...)
	return s
}

// Pump runs the frame callbacks due at now.
func (s *Stage) Pump(now time.Time) int {
	return s.Loop.Pump(now)
}

// Resize changes the viewport; the engine rebuilds on change.
func (s *Stage) Resize(width, height, ratio float64) {
	s.Window.Resize(width, height, ratio)
}

// Image returns the canvas contents.
func (s *Stage) Image() *image.RGBA {
	return s.Canvas.Image()
}

// Close destroys the engine.
func (s *Stage) Close() {
	s.Engine.Destroy()
}

// Snapshot renders o headlessly: it starts a stage on a manual clock,
// pumps it for the simulated duration after in steps of step and returns a
// copy of the canvas.
func Snapshot(o StageOptions, after, step time.Duration) *image.RGBA {
	if step <= 0 {
		step = time.Second / 60
	}
	clock := core.NewManualClock(time.Unix(0, 0).UTC())
	o.Clock = clock

	s := NewStage(o)
	defer s.Close()

	s.Engine.Start()
	for elapsed := time.Duration(0); elapsed < after; elapsed += step {
		s.Pump(clock.Advance(step))
	}

	img := s.Image()
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

// CellViewport returns the logical viewport and pixel ratio for a terminal
// of cols x rows cells drawn with half blocks, supersampled ss times.
// The resulting canvas is (cols*ss) x (rows*2*ss) device pixels.
func CellViewport(cols, rows, ss int) (width, height, ratio float64) {
	if ss < 1 {
		ss = 1
	}
	width = float64(cols * core.CellWidth)
	height = float64(rows * core.CellHeight)
	ratio = float64(ss) / core.CellWidth
	return width, height, ratio
}
