// Package window hosts the galaxy viewer in a desktop window with Ebiten.
package window

import (
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-galaxy/internal/config"
	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
	"github.com/vovakirdan/tui-galaxy/internal/storage"
	"github.com/vovakirdan/tui-galaxy/internal/viewer"
)

// Options configures the desktop viewer.
type Options struct {
	Width, Height int     // Initial window size, default 1280x720
	Scale         float64 // Canvas pixels per window pixel, default 1
	TickRate      int     // Ebiten ticks per second, default 60
	Engine        galaxy.Config
	Catalog       *config.Catalog
	Jump          viewer.Jump
	Seed          int64
	Store         *storage.Store
	Logger        *log.Logger
	Clock         core.Clock
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = 1280, 720
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.TickRate <= 0 {
		o.TickRate = 60
	}
	if o.Catalog == nil {
		o.Catalog = config.NewCatalog(config.DefaultFile().Palettes, nil)
	}
	if o.Jump.Duration <= 0 {
		o.Jump = viewer.DefaultJump()
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Clock == nil {
		o.Clock = core.SystemClock{}
	}
	return o
}

// keyBinding maps an Ebiten key to a viewer action.
type keyBinding struct {
	key    ebiten.Key
	action core.Action
}

var keyBindings = []keyBinding{
	{ebiten.KeyArrowRight, core.ActionNextLevel},
	{ebiten.KeyL, core.ActionNextLevel},
	{ebiten.KeyTab, core.ActionNextLevel},
	{ebiten.KeyArrowLeft, core.ActionPrevLevel},
	{ebiten.KeyH, core.ActionPrevLevel},
	{ebiten.KeySpace, core.ActionJump},
	{ebiten.KeyR, core.ActionReverse},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyD, core.ActionRedraw},
	{ebiten.KeyQ, core.ActionQuit},
	{ebiten.KeyEscape, core.ActionQuit},
}

// collectInput fills f with the actions whose keys were just pressed.
func collectInput(f *core.InputFrame, justPressed func(ebiten.Key) bool) {
	f.Clear()
	for _, b := range keyBindings {
		if justPressed(b.key) {
			f.Set(b.action)
		}
	}
}

// Game implements ebiten.Game around a viewer stage.
type Game struct {
	stage   *viewer.Stage
	ctrl    *viewer.Controller
	opts    Options
	input   core.InputFrame
	title   string
	started time.Time
	closed  bool
}

// NewGame builds the viewer. The engine is started on the first Update.
func NewGame(o Options) *Game {
	o = o.withDefaults()

	var first *config.LevelPalette
	if o.Catalog.Len() > 0 {
		p := o.Catalog.At(0)
		first = &p
	}

	stage := viewer.NewStage(viewer.StageOptions{
		Width:   float64(o.Width),
		Height:  float64(o.Height),
		Ratio:   o.Scale,
		Engine:  o.Engine,
		Palette: first,
		Seed:    o.Seed,
		Logger:  o.Logger,
		Clock:   o.Clock,
	})

	ctrl := viewer.NewController(stage.Engine, o.Catalog, o.Jump, o.Logger)
	ctrl.Watch(stage.Window)

	return &Game{
		stage:   stage,
		ctrl:    ctrl,
		opts:    o,
		input:   core.NewInputFrame(),
		started: o.Clock.Now(),
	}
}

// Update applies input and pumps the frame loop.
func (g *Game) Update() error {
	if g.stage.Engine.State() == galaxy.StateReady {
		g.ctrl.Start()
	}

	collectInput(&g.input, inpututil.IsKeyJustPressed)
	if g.step(g.input) {
		return ebiten.Termination
	}

	if title := g.Title(); title != g.title {
		g.title = title
		ebiten.SetWindowTitle(title)
	}
	return nil
}

// step applies one frame of input and pumps the loop.
// Returns true when the viewer should close.
func (g *Game) step(f core.InputFrame) bool {
	if g.closed {
		return true
	}
	if g.ctrl.HandleFrame(f) {
		g.Close()
		return true
	}
	g.stage.Pump(g.opts.Clock.Now())
	return false
}

// Layout resizes the viewport to the window and returns the canvas size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.stage.Resize(float64(outsideWidth), float64(outsideHeight), g.opts.Scale)
	return deviceSize(outsideWidth, g.opts.Scale), deviceSize(outsideHeight, g.opts.Scale)
}

func deviceSize(logical int, scale float64) int {
	return max(int(math.Round(float64(logical)*scale)), 1)
}

// Draw uploads the canvas to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	img := g.stage.Image()
	if img.Bounds().Size() != screen.Bounds().Size() {
		// Layout and the canvas disagree for one frame after a resize.
		return
	}
	screen.WritePixels(img.Pix)
}

// Title returns the window title for the current viewer state.
func (g *Game) Title() string {
	return "galaxy - " + g.ctrl.Status()
}

// Close records the session and destroys the engine. Safe to call twice.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true

	if g.opts.Store != nil {
		_, err := g.opts.Store.SaveSession(storage.SessionEntry{
			Mode:     "window",
			Levels:   g.ctrl.Changes(),
			Duration: int(g.opts.Clock.Now().Sub(g.started).Seconds()),
		})
		if err != nil && g.opts.Logger != nil {
			g.opts.Logger.Warn("could not save session", "error", err)
		}
	}
	g.stage.Close()
}

// Run opens the window and blocks until it is closed.
func Run(o Options) error {
	g := NewGame(o)
	defer g.Close()

	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle(g.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.opts.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
