// Package galaxy implements the animated starfield and nebula background:
// a radial field of drifting stars over additive nebula patches, with timed
// palette cross-fades. The engine draws onto any Surface and is driven by a
// host-owned frame Scheduler; it never blocks and never panics across its
// public methods.
package galaxy

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

// DefaultMoveDistance is the distance every star travels during a jump.
const DefaultMoveDistance = 200.0

// Scheduler is the host's "request next frame" primitive. core.Loop implements it.
type Scheduler interface {
	Request(fn core.FrameFunc) core.FrameID
	Cancel(id core.FrameID)
}

// Viewport reports the logical size and pixel ratio of the area to fill and
// lets the engine subscribe to size changes. core.Window implements it.
type Viewport interface {
	Size() (width, height, ratio float64)
	OnResize(fn func()) (cancel func())
}

// State is the engine lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateReady               // Bound to a surface, not started
	StateRunning             // A frame callback is scheduled
	StateStopped             // Started at least once, nothing scheduled
	StateDestroyed           // Terminal
	StateInert               // No drawing context; every call is a no-op
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateDestroyed:
		return "destroyed"
	case StateInert:
		return "inert"
	default:
		return "unknown"
	}
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithClock sets the clock used for colour transitions and jump timing.
func WithClock(c core.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the diagnostics logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSeed seeds the engine's random source. Zero uses the current time.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithConfig sets the initial configuration. Its colours become the current
// palette directly, without a transition.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg.sanitized() }
}

// Engine owns the scene, the palette transition and the frame loop.
// It is not safe for concurrent use: all calls must come from the goroutine
// that pumps its Scheduler.
type Engine struct {
	surface  Surface
	ctx      Context
	viewport Viewport
	frames   Scheduler
	clock    core.Clock
	logger   *log.Logger
	rng      *rand.Rand

	cfg   Config
	state State

	// Logical viewport, as of the last surface setup
	width, height, ratio float64

	stars        []Star
	geometry     []nebulaGeometry
	geomW, geomH float64 // Viewport the geometry was generated for
	patches      []NebulaPatch

	colors colorTransition

	frameID     core.FrameID
	lastDraw    time.Time
	unsubscribe func()
}

// defaultPalette matches DefaultConfig's colours.
var defaultPalette = Palette{
	Main: core.Color{R: 60, G: 0, B: 150, A: 1},
	Side: [SideColorSlots]core.Color{
		{R: 200, G: 50, B: 100, A: 1},
		{R: 0, G: 180, B: 255, A: 1},
		{R: 255, G: 120, B: 0, A: 1},
	},
}

// New binds an engine to surface. If the surface has no drawing context the
// engine logs the problem and stays inert for its whole lifetime.
func New(surface Surface, viewport Viewport, frames Scheduler, opts ...Option) *Engine {
	e := &Engine{
		surface:  surface,
		viewport: viewport,
		frames:   frames,
		clock:    core.SystemClock{},
		logger:   log.New(io.Discard),
		cfg:      DefaultConfig(),
		state:    StateUninitialized,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		WithSeed(0)(e)
	}

	e.colors.current = paletteFromStrings(e.cfg.MainColor, e.cfg.SideColors, defaultPalette)
	e.colors.target = e.colors.current

	e.initialize()
	return e
}

// initialize acquires the context and subscribes to resizes.
func (e *Engine) initialize() {
	if e.surface == nil || e.viewport == nil || e.frames == nil {
		e.logger.Error("galaxy disabled: missing surface, viewport or scheduler")
		e.state = StateInert
		return
	}

	ctx, err := e.surface.Context()
	if err != nil || ctx == nil {
		e.logger.Error("2D context not available", "error", err)
		e.state = StateInert
		return
	}

	e.ctx = ctx
	e.unsubscribe = e.viewport.OnResize(e.handleResize)
	e.state = StateReady
}

// usable reports whether the engine may still draw.
func (e *Engine) usable() bool {
	switch e.state {
	case StateReady, StateRunning, StateStopped:
		return true
	default:
		return false
	}
}

// Start sizes the surface, builds the scene and draws the first frame.
// Unless the engine is static the frame loop is then scheduled.
func (e *Engine) Start() {
	if !e.usable() {
		return
	}
	e.setupSurface()
	e.redraw()
}

// Stop cancels the scheduled frame callback. Calling it again is harmless.
func (e *Engine) Stop() {
	if e.frameID != 0 {
		e.frames.Cancel(e.frameID)
		e.frameID = 0
	}
	if e.state == StateRunning {
		e.state = StateStopped
	}
}

// Resume reschedules the idle loop without rebuilding the scene.
// No-op when static, already scheduled, or not usable.
func (e *Engine) Resume() {
	if !e.usable() || e.frameID != 0 || e.cfg.Static {
		return
	}
	e.schedule(e.animate)
}

// Redraw rebuilds the scene and restarts the loop. Nebula geometry is only
// regenerated when the patch count or viewport size changed; the star field
// is always regenerated. Before the first Start the surface is sized first.
func (e *Engine) Redraw() {
	if !e.usable() {
		return
	}
	if e.state == StateReady {
		e.setupSurface()
	}
	e.redraw()
}

func (e *Engine) redraw() {
	e.Stop()

	if len(e.geometry) != e.cfg.NebulaCount || e.geomW != e.width || e.geomH != e.height {
		e.initNebulaGeometry()
	}
	e.initNebula()
	e.initStars()

	e.drawNebula(e.clock.Now())
	e.drawStars()

	if e.cfg.Static {
		e.state = StateStopped
		return
	}
	e.schedule(e.animate)
}

// Destroy stops the loop, drops the resize subscription and clears the
// surface. The engine cannot be used afterwards.
func (e *Engine) Destroy() {
	if e.state == StateDestroyed {
		return
	}
	e.Stop()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if e.ctx != nil {
		e.ctx.SetShadow(0, core.Transparent)
		e.ctx.SetCompositeOp(SourceOver)
		e.ctx.SetGlobalAlpha(1)
		e.ctx.ClearRect(0, 0, e.width, e.height)
	}
	e.stars = nil
	e.patches = nil
	e.geometry = nil
	e.state = StateDestroyed
}

// Configure merges o into the configuration. Colour fields start a
// transition; radius inversion is corrected silently.
func (e *Engine) Configure(o Options, redrawNow bool) {
	if !e.usable() {
		return
	}
	e.cfg = e.cfg.merge(o)

	if o.MainColor != nil {
		e.SetMainColor(*o.MainColor)
	}
	if o.SideColors != nil {
		e.SetSideColors(o.SideColors)
	}

	if redrawNow {
		e.Redraw()
	}
}

// SetMainColor starts a transition of the main colour. Malformed input
// fades to opaque black.
func (e *Engine) SetMainColor(color string) {
	if !e.usable() {
		return
	}
	c, ok := core.ParseColor(color)
	if !ok {
		e.logger.Warn("malformed color, using black", "color", color)
	}

	e.colors.retarget(e.clock.Now(), e.cfg.TransitionDuration)
	e.colors.target.Main = c
	e.cfg.MainColor = color
}

// SetSideColors starts a transition of the side colours. Extra entries are
// dropped; missing slots fade to their current colour.
func (e *Engine) SetSideColors(colors []string) {
	if !e.usable() {
		return
	}

	e.colors.retarget(e.clock.Now(), e.cfg.TransitionDuration)
	for i := 0; i < SideColorSlots; i++ {
		if i >= len(colors) {
			e.colors.target.Side[i] = e.colors.current.Side[i]
			continue
		}
		c, ok := core.ParseColor(colors[i])
		if !ok {
			e.logger.Warn("malformed side color, using black", "slot", i, "color", colors[i])
		}
		e.colors.target.Side[i] = c
	}

	n := len(colors)
	if n > SideColorSlots {
		n = SideColorSlots
	}
	e.cfg.SideColors = append([]string(nil), colors[:n]...)
}

// RunForDuration replaces the idle loop with a bounded animation that moves
// every star moveDist further out, following ease. onFrame receives the
// eased progress each frame; onDone fires once when d has elapsed. The idle
// loop is not restarted afterwards; call Resume or Redraw from onDone.
func (e *Engine) RunForDuration(d time.Duration, ease EaseFunc, onDone func(), onFrame func(easeT float64), moveDist float64) {
	if !e.usable() {
		return
	}
	e.Stop()
	if ease == nil {
		ease = Linear
	}

	for i := range e.stars {
		s := &e.stars[i]
		s.HasTransition = true
		s.TransitionStart = s.Dist
		s.TransitionTarget = s.Dist + moveDist
	}

	start := e.clock.Now()
	var step core.FrameFunc
	step = func(now time.Time) {
		e.frameID = 0
		elapsed := now.Sub(start)

		t := 1.0
		if d > 0 {
			t = core.ClampF(float64(elapsed)/float64(d), 0, 1)
		}
		easeT := ease(t)

		if onFrame != nil {
			onFrame(easeT)
			// The callback may have stopped or destroyed the engine.
			if e.state != StateRunning {
				return
			}
		}

		e.updateStars(easeT, true)
		e.drawNebula(e.clock.Now())
		e.drawStars()

		if elapsed < d {
			e.frameID = e.frames.Request(step)
			return
		}

		e.clearTransitions()
		e.state = StateStopped
		if onDone != nil {
			onDone()
		}
	}
	e.schedule(step)
}

// handleResize is the viewport subscription.
func (e *Engine) handleResize() {
	if !e.usable() {
		return
	}
	e.setupSurface()
	e.redraw()
}

// setupSurface sizes the backing store in device pixels and scales the
// transform so the rest of the engine works in logical pixels.
func (e *Engine) setupSurface() {
	w, h, ratio := e.viewport.Size()
	if ratio <= 0 {
		ratio = 1
	}
	e.width, e.height, e.ratio = w, h, ratio

	e.ctx.SetSize(int(math.Round(w*ratio)), int(math.Round(h*ratio)))
	e.ctx.Scale(ratio, ratio)
}

// schedule requests fn for the next frame and marks the engine running.
func (e *Engine) schedule(fn core.FrameFunc) {
	e.frameID = e.frames.Request(fn)
	e.state = StateRunning
}

// animate is the idle loop, throttled to the target frame rate.
func (e *Engine) animate(now time.Time) {
	e.frameID = 0

	interval := time.Second / time.Duration(e.cfg.TargetFPS)
	if e.lastDraw.IsZero() || now.Sub(e.lastDraw) >= interval {
		e.drawNebula(e.clock.Now())
		e.updateStars(1, false)
		e.drawStars()
		e.lastDraw = now
	}

	e.frameID = e.frames.Request(e.animate)
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.SideColors = append([]string(nil), e.cfg.SideColors...)
	return cfg
}

// Size returns the logical viewport and pixel ratio used for the scene.
func (e *Engine) Size() (width, height, ratio float64) {
	return e.width, e.height, e.ratio
}

// Stars returns a copy of the star field.
func (e *Engine) Stars() []Star {
	return append([]Star(nil), e.stars...)
}

// Patches returns a copy of the nebula patches.
func (e *Engine) Patches() []NebulaPatch {
	return append([]NebulaPatch(nil), e.patches...)
}

// Palette returns the committed palette. During a transition this is the
// colour the fade started from.
func (e *Engine) Palette() Palette {
	return e.colors.current
}

// TargetPalette returns the palette the current transition heads to.
func (e *Engine) TargetPalette() Palette {
	if !e.colors.active {
		return e.colors.current
	}
	return e.colors.target
}

// Transitioning reports whether a colour transition is still pending.
func (e *Engine) Transitioning() bool {
	return e.colors.active
}
