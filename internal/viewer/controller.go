package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxy/internal/config"
	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
	"github.com/vovakirdan/tui-galaxy/internal/registry"
)

// Jump settings used on level changes.
const (
	DefaultJumpDuration = 1200 * time.Millisecond
	DefaultJumpEase     = "ease-in-out-circ"
)

// Jump describes the warp animation played on level changes.
type Jump struct {
	Duration time.Duration
	Ease     galaxy.EaseFunc
	Distance float64
}

// DefaultJump returns the stock level-change animation.
func DefaultJump() Jump {
	ease, _ := registry.Get(DefaultJumpEase)
	return Jump{
		Duration: DefaultJumpDuration,
		Ease:     ease,
		Distance: galaxy.DefaultMoveDistance,
	}
}

// JumpWithEase returns the default jump using a registered easing.
func JumpWithEase(id string) (Jump, error) {
	ease, err := registry.Get(id)
	if err != nil {
		return Jump{}, err
	}
	j := DefaultJump()
	j.Ease = ease
	return j, nil
}

// Controller applies viewer actions to an engine.
type Controller struct {
	engine  *galaxy.Engine
	catalog *config.Catalog
	jump    Jump
	logger  *log.Logger

	level    int
	paused   bool
	jumping  bool
	showHelp bool
	changes  int
}

// NewController creates a controller positioned on the first level.
// logger may be nil.
func NewController(engine *galaxy.Engine, catalog *config.Catalog, jump Jump, logger *log.Logger) *Controller {
	if jump.Ease == nil {
		jump.Ease = galaxy.Linear
	}
	return &Controller{
		engine:  engine,
		catalog: catalog,
		jump:    jump,
		logger:  logger,
	}
}

// Start starts the engine.
func (c *Controller) Start() {
	c.engine.Start()
}

// HandleFrame applies every action of an input frame in order.
// Returns true if one of them asked to quit.
func (c *Controller) HandleFrame(f core.InputFrame) (quit bool) {
	for _, a := range f.Actions {
		if c.Apply(a) {
			quit = true
		}
	}
	return quit
}

// Apply performs one action. Returns true for ActionQuit.
func (c *Controller) Apply(a core.Action) (quit bool) {
	switch a {
	case core.ActionNextLevel:
		c.SetLevel(c.level + 1)
	case core.ActionPrevLevel:
		c.SetLevel(c.level - 1)
	case core.ActionJump:
		c.startJump()
	case core.ActionReverse:
		reversed := !c.engine.Config().IsReversed
		c.engine.Configure(galaxy.Options{IsReversed: galaxy.Ptr(reversed)}, false)
		c.debug("direction changed", "reversed", reversed)
	case core.ActionPause:
		c.togglePause()
	case core.ActionRedraw:
		c.jumping = false
		c.engine.Redraw()
		if c.paused {
			c.engine.Stop()
		}
	case core.ActionHelp:
		c.showHelp = !c.showHelp
	case core.ActionQuit:
		return true
	}
	return false
}

// SetLevel switches to catalog position i (wrapping), fading to its
// palette while the stars jump forward.
func (c *Controller) SetLevel(i int) {
	n := c.catalog.Len()
	if n > 0 {
		i = ((i % n) + n) % n
	}
	c.level = i
	c.changes++

	p := c.catalog.At(i)
	c.engine.SetMainColor(p.Main)
	c.engine.SetSideColors(p.Side)
	c.debug("level changed", "level", p.Level, "name", p.Name)

	c.startJump()
}

func (c *Controller) startJump() {
	c.jumping = true
	c.engine.RunForDuration(c.jump.Duration, c.jump.Ease, c.jumpDone, nil, c.jump.Distance)
}

func (c *Controller) jumpDone() {
	c.jumping = false
	if !c.paused {
		c.engine.Resume()
	}
}

func (c *Controller) togglePause() {
	if c.paused {
		c.paused = false
		if !c.jumping {
			c.engine.Resume()
		}
		return
	}
	c.paused = true
	c.jumping = false
	c.engine.Stop()
}

// Watch keeps the controller consistent with viewport changes. The engine
// rebuilds the scene on resize, which drops a running jump and restarts the
// idle loop; a paused viewer is stopped again. w must be the viewport the
// engine was created with, so that the engine is notified first.
func (c *Controller) Watch(w *core.Window) (cancel func()) {
	return w.OnResize(c.resized)
}

func (c *Controller) resized() {
	c.jumping = false
	if c.paused {
		c.engine.Stop()
	}
}

func (c *Controller) debug(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keyvals...)
	}
}

// Level returns the current level palette.
func (c *Controller) Level() config.LevelPalette {
	return c.catalog.At(c.level)
}

// LevelIndex returns the current catalog position.
func (c *Controller) LevelIndex() int {
	return c.level
}

// Paused reports whether the idle loop is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// Jumping reports whether a jump animation is running.
func (c *Controller) Jumping() bool {
	return c.jumping
}

// ShowHelp reports whether the full help should be displayed.
func (c *Controller) ShowHelp() bool {
	return c.showHelp
}

// Changes returns the number of level changes so far.
func (c *Controller) Changes() int {
	return c.changes
}

// Status returns a one-line summary for status bars and window titles.
func (c *Controller) Status() string {
	p := c.Level()
	parts := []string{fmt.Sprintf("Level %d", p.Level)}
	if p.Name != "" {
		parts[0] += " · " + p.Name
	}
	if c.engine.Config().IsReversed {
		parts = append(parts, "reversed")
	}
	if c.paused {
		parts = append(parts, "paused")
	}
	if c.jumping {
		parts = append(parts, "jump")
	}
	return strings.Join(parts, "  ")
}
