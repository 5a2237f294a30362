package galaxy

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

// fill is one recorded FillRect or FillCircle call with the state it ran under.
type fill struct {
	circle   bool
	x, y     float64
	w, h, r  float64
	color    core.Color
	gradient *RadialGradient
	op       CompositeOp
	alpha    float64
	glow     float64
}

// recorder is a Context that records what the engine draws.
type recorder struct {
	width, height int
	sx, sy        float64

	op       CompositeOp
	alpha    float64
	color    core.Color
	gradient *RadialGradient
	glow     float64

	fills  []fill
	clears int
	resets int
}

func newRecorder() *recorder {
	return &recorder{sx: 1, sy: 1, alpha: 1}
}

func (r *recorder) SetSize(width, height int) {
	r.width, r.height = width, height
	r.sx, r.sy = 1, 1
	r.op = SourceOver
	r.alpha = 1
	r.resets++
}

func (r *recorder) Size() (int, int) { return r.width, r.height }

func (r *recorder) Scale(sx, sy float64) {
	r.sx *= sx
	r.sy *= sy
}

func (r *recorder) SetCompositeOp(op CompositeOp) { r.op = op }
func (r *recorder) SetGlobalAlpha(a float64)      { r.alpha = a }

func (r *recorder) SetFillColor(c core.Color) {
	r.color = c
	r.gradient = nil
}

func (r *recorder) SetFillGradient(g *RadialGradient) {
	r.gradient = g
}

func (r *recorder) SetShadow(blur float64, _ core.Color) { r.glow = blur }
func (r *recorder) ClearRect(_, _, _, _ float64)         { r.clears++ }

func (r *recorder) FillRect(x, y, w, h float64) {
	r.fills = append(r.fills, fill{x: x, y: y, w: w, h: h, color: r.color, gradient: r.gradient, op: r.op, alpha: r.alpha, glow: r.glow})
}

func (r *recorder) FillCircle(cx, cy, radius float64) {
	r.fills = append(r.fills, fill{circle: true, x: cx, y: cy, r: radius, color: r.color, op: r.op, alpha: r.alpha, glow: r.glow})
}

// backgrounds counts full-frame background fills, one per drawn frame.
func (r *recorder) backgrounds() int {
	n := 0
	for _, f := range r.fills {
		if !f.circle && f.gradient == nil && f.color == backgroundColor {
			n++
		}
	}
	return n
}

func (r *recorder) circles() []fill {
	var out []fill
	for _, f := range r.fills {
		if f.circle {
			out = append(out, f)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.fills = nil
}

type fakeSurface struct {
	ctx *recorder
	err error
}

func (s *fakeSurface) Context() (Context, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ctx, nil
}

// harness bundles an engine with its fake host.
type harness struct {
	engine *Engine
	rec    *recorder
	loop   *core.Loop
	window *core.Window
	clock  *core.ManualClock
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newHarness(t *testing.T, width, height float64, cfg Config) *harness {
	t.Helper()
	h := &harness{
		rec:    newRecorder(),
		loop:   core.NewLoop(),
		window: core.NewWindow(width, height, 1),
		clock:  core.NewManualClock(epoch),
	}
	h.engine = New(&fakeSurface{ctx: h.rec}, h.window, h.loop,
		WithClock(h.clock),
		WithSeed(42),
		WithConfig(cfg),
	)
	if h.engine.State() != StateReady {
		t.Fatalf("State() = %v, expected ready", h.engine.State())
	}
	return h
}

// advance moves the clock by d and pumps one frame at the new time.
func (h *harness) advance(d time.Duration) int {
	return h.loop.Pump(h.clock.Advance(d))
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.StarCount = 50
	cfg.NebulaCount = 6
	return cfg
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func approxColor(a, b core.Color) bool {
	return approx(a.R, b.R) && approx(a.G, b.G) && approx(a.B, b.B) && approx(a.A, b.A)
}
