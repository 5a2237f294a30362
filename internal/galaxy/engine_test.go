package galaxy

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

func TestNewInertWithoutContext(t *testing.T) {
	loop := core.NewLoop()
	window := core.NewWindow(800, 600, 1)
	e := New(&fakeSurface{err: ErrNoContext}, window, loop)

	if e.State() != StateInert {
		t.Fatalf("State() = %v, expected inert", e.State())
	}

	// Every operation is absorbed.
	e.Start()
	e.Redraw()
	e.Resume()
	e.SetMainColor("#ff0000")
	e.SetSideColors([]string{"#00ff00"})
	e.Configure(Options{StarCount: Ptr(10)}, true)
	e.RunForDuration(time.Second, nil, func() { t.Error("onDone called on inert engine") }, nil, 100)
	e.Stop()
	window.Resize(1024, 768, 1)

	if loop.Pending() != 0 {
		t.Errorf("inert engine scheduled %d frames", loop.Pending())
	}
	if window.Listeners() != 0 {
		t.Errorf("inert engine subscribed to resizes")
	}
	if e.State() != StateInert {
		t.Errorf("State() = %v after calls, expected inert", e.State())
	}
}

func TestNewInertWithNilSurface(t *testing.T) {
	e := New(nil, core.NewWindow(10, 10, 1), core.NewLoop())
	if e.State() != StateInert {
		t.Errorf("State() = %v, expected inert", e.State())
	}
}

func TestSurfaceErrorIsLoggedNotReturned(t *testing.T) {
	e := New(&fakeSurface{err: errors.New("boom")}, core.NewWindow(10, 10, 1), core.NewLoop())
	if e.State() != StateInert {
		t.Errorf("State() = %v, expected inert", e.State())
	}
}

func TestStartSizesSurfaceForPixelRatio(t *testing.T) {
	rec := newRecorder()
	window := core.NewWindow(100, 50, 2)
	e := New(&fakeSurface{ctx: rec}, window, core.NewLoop(), WithConfig(smallConfig()), WithSeed(1))
	e.Start()

	if w, h := rec.Size(); w != 200 || h != 100 {
		t.Errorf("backing store = %dx%d, expected 200x100", w, h)
	}
	if rec.sx != 2 || rec.sy != 2 {
		t.Errorf("scale = (%v, %v), expected (2, 2)", rec.sx, rec.sy)
	}
	if w, h, r := e.Size(); w != 100 || h != 50 || r != 2 {
		t.Errorf("Size() = (%v, %v, %v), expected (100, 50, 2)", w, h, r)
	}
}

func TestStartNonPositiveRatio(t *testing.T) {
	rec := newRecorder()
	e := New(&fakeSurface{ctx: rec}, core.NewWindow(100, 50, 0), core.NewLoop(), WithConfig(smallConfig()))
	e.Start()

	if w, h := rec.Size(); w != 100 || h != 50 {
		t.Errorf("backing store = %dx%d, expected 100x50", w, h)
	}
}

func TestStartDrawsAndSchedules(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()

	if h.engine.State() != StateRunning {
		t.Errorf("State() = %v, expected running", h.engine.State())
	}
	if got := h.rec.backgrounds(); got != 1 {
		t.Errorf("Start drew %d frames, expected 1", got)
	}
	if h.loop.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", h.loop.Pending())
	}
	if got := len(h.engine.Stars()); got != 50 {
		t.Errorf("len(Stars()) = %d, expected 50", got)
	}
	if got := len(h.engine.Patches()); got != 6 {
		t.Errorf("len(Patches()) = %d, expected 6", got)
	}
}

func TestStaticDrawsOneFrame(t *testing.T) {
	cfg := smallConfig()
	cfg.Static = true
	h := newHarness(t, 800, 600, cfg)
	h.engine.Start()

	if got := h.rec.backgrounds(); got != 1 {
		t.Errorf("static Start drew %d frames, expected 1", got)
	}
	if h.loop.Pending() != 0 {
		t.Errorf("static engine scheduled %d frames", h.loop.Pending())
	}
	if h.engine.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", h.engine.State())
	}

	h.engine.Resume()
	if h.loop.Pending() != 0 {
		t.Errorf("Resume scheduled a frame on a static engine")
	}
}

func TestStopTwice(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()

	h.engine.Stop()
	h.engine.Stop()

	if h.engine.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", h.engine.State())
	}
	h.rec.reset()
	if n := h.advance(time.Second); n != 0 {
		t.Errorf("%d callbacks ran after Stop", n)
	}
	if len(h.rec.fills) != 0 {
		t.Errorf("engine drew after Stop")
	}
}

func TestResumeAfterStop(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()
	h.engine.Stop()

	before := h.engine.Stars()
	h.engine.Resume()
	h.engine.Resume()

	if h.loop.Pending() != 1 {
		t.Fatalf("Pending() = %d after Resume, expected 1", h.loop.Pending())
	}
	after := h.engine.Stars()
	for i := range before {
		if before[i].Angle != after[i].Angle {
			t.Fatalf("Resume regenerated the star field")
		}
	}
}

func TestThrottle(t *testing.T) {
	cfg := smallConfig()
	cfg.TargetFPS = 30
	h := newHarness(t, 800, 600, cfg)
	h.engine.Start()
	h.rec.reset()

	h.advance(0) // first idle frame always draws
	if got := h.rec.backgrounds(); got != 1 {
		t.Fatalf("first idle frame drew %d times, expected 1", got)
	}

	h.advance(10 * time.Millisecond)
	if got := h.rec.backgrounds(); got != 1 {
		t.Errorf("frame 10ms later drew, expected skip")
	}

	h.advance(30 * time.Millisecond)
	if got := h.rec.backgrounds(); got != 2 {
		t.Errorf("frame 40ms later: %d draws, expected 2", got)
	}

	if h.loop.Pending() != 1 {
		t.Errorf("idle loop should keep rescheduling, Pending() = %d", h.loop.Pending())
	}
}

func TestPositionInvariant(t *testing.T) {
	cfg := smallConfig()
	cfg.StarSpeedFactor = 5000 // Force frequent respawns
	h := newHarness(t, 640, 480, cfg)
	h.engine.Start()

	center := core.Point{X: 320, Y: 240}
	for i := 0; i < 40; i++ {
		h.advance(50 * time.Millisecond)
		for j, s := range h.engine.Stars() {
			want := core.Polar(center, s.Angle, s.Dist)
			if !approx(s.Pos.X, want.X) || !approx(s.Pos.Y, want.Y) {
				t.Fatalf("frame %d star %d: Pos = %+v, expected %+v", i, j, s.Pos, want)
			}
			if s.Dist > 320+respawnMargin {
				t.Fatalf("frame %d star %d: Dist = %v beyond boundary", i, j, s.Dist)
			}
		}
	}
}

func TestDriftAcceleration(t *testing.T) {
	tests := []struct {
		name     string
		reversed bool
		dist     float64
		expected float64
	}{
		{"outward", false, 100, 100 + 100*100*speedScale},
		{"inward", true, 100, 100 - 100*100*speedScale},
		{"near center uses floor of one", false, 0.5, 0.5 + speedScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			cfg.IsReversed = tt.reversed
			h := newHarness(t, 800, 600, cfg)
			h.engine.Start()
			h.engine.Stop()

			h.engine.stars = []Star{{Angle: 0, Dist: tt.dist, Radius: 1}}
			h.engine.updateStars(1, false)

			if got := h.engine.stars[0].Dist; !approx(got, tt.expected) {
				t.Errorf("Dist = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRespawn(t *testing.T) {
	t.Run("outward past boundary", func(t *testing.T) {
		h := newHarness(t, 800, 600, smallConfig())
		h.engine.Start()
		h.engine.Stop()

		// boundary = 400 + 50
		h.engine.stars = []Star{{Angle: 1, Dist: 451, Radius: 1}}
		h.engine.updateStars(1, false)

		s := h.engine.stars[0]
		if s.Dist < 50 || s.Dist >= 400 {
			t.Errorf("respawned Dist = %v, expected in [50, 400)", s.Dist)
		}
	})

	t.Run("inward past center", func(t *testing.T) {
		cfg := smallConfig()
		cfg.IsReversed = true
		h := newHarness(t, 800, 600, cfg)
		h.engine.Start()
		h.engine.Stop()

		h.engine.stars = []Star{{Angle: 1, Dist: -60, Radius: 1}}
		h.engine.updateStars(1, false)

		if got := h.engine.stars[0].Dist; got != 450 {
			t.Errorf("respawned Dist = %v, expected 450", got)
		}
	})

	t.Run("inward within margin keeps going", func(t *testing.T) {
		cfg := smallConfig()
		cfg.IsReversed = true
		h := newHarness(t, 800, 600, cfg)
		h.engine.Start()
		h.engine.Stop()

		h.engine.stars = []Star{{Angle: 1, Dist: -40, Radius: 1}}
		h.engine.updateStars(1, false)

		if got := h.engine.stars[0].Dist; got >= -40 || got < -41 {
			t.Errorf("Dist = %v, expected slightly below -40", got)
		}
	})
}

func TestStarAlphaAndCulling(t *testing.T) {
	h := newHarness(t, 800, 800, smallConfig())
	h.engine.Start()
	h.engine.Stop()

	// maxDrawDist = 400
	h.engine.stars = []Star{
		{Dist: 0, Radius: 1},
		{Dist: 400, Radius: 1},
		{Dist: -200, Radius: 1},
		{Dist: 449, Radius: 1},
		{Dist: 450, Radius: 1},  // culled
		{Dist: -500, Radius: 1}, // culled
	}
	for i := range h.engine.stars {
		s := &h.engine.stars[i]
		s.Pos = core.Polar(core.Point{X: 400, Y: 400}, 0, s.Dist)
	}
	h.rec.reset()
	h.engine.drawStars()

	circles := h.rec.circles()
	if len(circles) != 4 {
		t.Fatalf("drew %d stars, expected 4", len(circles))
	}

	expected := []struct {
		alpha  float64
		radius float64
	}{
		{0.1, 0.25},
		{0.9, 1},
		{0.1 + 0.25*0.8, 0.25 + 0.25*0.75},
		{0.9, 0.25 + math.Pow(449.0/400, 2)*0.75},
	}
	for i, want := range expected {
		got := circles[i]
		if !approx(got.color.A, want.alpha) {
			t.Errorf("star %d alpha = %v, expected %v", i, got.color.A, want.alpha)
		}
		if !approx(got.r, want.radius) {
			t.Errorf("star %d radius = %v, expected %v", i, got.r, want.radius)
		}
		if got.color.A < 0.1 || got.color.A > 0.9 {
			t.Errorf("star %d alpha %v outside [min, 0.9]", i, got.color.A)
		}
	}
}

func TestTwinkleGlow(t *testing.T) {
	h := newHarness(t, 800, 800, smallConfig())
	h.engine.Start()
	h.engine.Stop()

	h.engine.stars = []Star{
		{Dist: 10, Radius: 1, Twinkle: true},
		{Dist: 10, Radius: 1},
	}
	h.rec.reset()
	h.engine.drawStars()

	circles := h.rec.circles()
	if circles[0].glow < 0 || circles[0].glow > maxGlow {
		t.Errorf("twinkle glow = %v, expected in [0, %v]", circles[0].glow, maxGlow)
	}
	if circles[1].glow != 0 {
		t.Errorf("plain star glow = %v, expected 0", circles[1].glow)
	}
	if h.rec.glow != 0 {
		t.Errorf("glow left enabled after drawing stars")
	}
}

func TestNebulaDrawing(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()
	h.engine.Stop()
	h.rec.reset()

	h.engine.drawNebula(h.clock.Now())

	if len(h.rec.fills) != 1+6 {
		t.Fatalf("drew %d rects, expected 7", len(h.rec.fills))
	}
	bg := h.rec.fills[0]
	if bg.op != SourceOver || bg.color != backgroundColor || bg.w != 800 || bg.h != 600 {
		t.Errorf("background fill = %+v", bg)
	}

	colors := h.engine.Palette().Colors()
	for i, f := range h.rec.fills[1:] {
		p := h.engine.Patches()[i]
		if f.op != Lighter {
			t.Errorf("patch %d op = %v, expected lighter", i, f.op)
		}
		if f.alpha != 0.5 {
			t.Errorf("patch %d global alpha = %v, expected 0.5", i, f.alpha)
		}
		if f.w != 2*p.Radius || f.x != p.Center.X-p.Radius {
			t.Errorf("patch %d rect does not bound its circle", i)
		}
		if p.ColorSlot != i%4 {
			t.Errorf("patch %d slot = %d, expected %d", i, p.ColorSlot, i%4)
		}
		g := f.gradient
		if g == nil || len(g.Stops) != 3 {
			t.Fatalf("patch %d gradient = %+v", i, g)
		}
		base := colors[p.ColorSlot]
		if !approxColor(g.Stops[0].Color, base.WithAlpha(p.CenterAlpha)) {
			t.Errorf("patch %d center stop = %v", i, g.Stops[0].Color)
		}
		if g.Stops[1].Offset != 0.7 || !approxColor(g.Stops[1].Color, base.WithAlpha(p.MiddleAlpha)) {
			t.Errorf("patch %d middle stop = %+v", i, g.Stops[1])
		}
		if g.Stops[2].Color.A != 0 {
			t.Errorf("patch %d outer stop alpha = %v, expected 0", i, g.Stops[2].Color.A)
		}
		if p.Radius < 200 || p.Radius >= 500 {
			t.Errorf("patch %d radius = %v, expected in [200, 500)", i, p.Radius)
		}
	}

	if h.rec.op != SourceOver || h.rec.alpha != 1 {
		t.Errorf("drawing state not restored: op=%v alpha=%v", h.rec.op, h.rec.alpha)
	}
}

func TestNebulaPatchAlphas(t *testing.T) {
	cfg := smallConfig()
	cfg.NebulaCount = 2000
	h := newHarness(t, 800, 600, cfg)
	h.engine.Start()

	for i, p := range h.engine.Patches() {
		if !(p.CenterAlpha > p.MiddleAlpha && p.MiddleAlpha > 0) {
			t.Fatalf("patch %d alphas center=%v middle=%v, expected center > middle > 0", i, p.CenterAlpha, p.MiddleAlpha)
		}
		if p.CenterAlpha < 0.2 || p.CenterAlpha >= 0.4 {
			t.Errorf("patch %d center alpha = %v, expected in [0.2, 0.4)", i, p.CenterAlpha)
		}
		if p.MiddleAlpha < 0.05 || p.MiddleAlpha >= 0.15 {
			t.Errorf("patch %d middle alpha = %v, expected in [0.05, 0.15)", i, p.MiddleAlpha)
		}
	}
}

func TestRedrawKeepsNebulaGeometry(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()
	before := h.engine.Patches()

	h.engine.Redraw()
	after := h.engine.Patches()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("patch %d changed on Redraw without resize", i)
		}
	}

	h.engine.Configure(Options{NebulaCount: Ptr(8)}, true)
	if got := len(h.engine.Patches()); got != 8 {
		t.Errorf("len(Patches()) = %d after count change, expected 8", got)
	}
}

func TestResizeRebuildsScene(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()
	h.rec.reset()

	h.window.Resize(1024, 768, 1)

	if w, hh := h.rec.Size(); w != 1024 || hh != 768 {
		t.Errorf("backing store = %dx%d after resize", w, hh)
	}
	if got := h.rec.backgrounds(); got != 1 {
		t.Errorf("resize drew %d frames, expected 1", got)
	}
	if h.loop.Pending() != 1 {
		t.Errorf("Pending() = %d after resize, expected 1", h.loop.Pending())
	}
	for _, p := range h.engine.Patches() {
		if p.Center.X > 1024 || p.Center.Y > 768 {
			t.Fatalf("patch center %+v outside resized viewport", p.Center)
		}
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()

	h.engine.Destroy()
	if h.engine.State() != StateDestroyed {
		t.Fatalf("State() = %v, expected destroyed", h.engine.State())
	}
	if h.rec.clears != 1 {
		t.Errorf("Destroy cleared %d times, expected 1", h.rec.clears)
	}
	if h.window.Listeners() != 0 {
		t.Errorf("resize listener still registered")
	}

	h.rec.reset()
	resets := h.rec.resets
	h.window.Resize(1000, 1000, 1)
	h.advance(time.Second)
	h.engine.Start()
	h.engine.Redraw()
	h.engine.Destroy()

	if len(h.rec.fills) != 0 || h.rec.resets != resets {
		t.Errorf("destroyed engine touched the surface")
	}
	if h.loop.Pending() != 0 {
		t.Errorf("destroyed engine scheduled frames")
	}
}

func TestConfigureRadiusClamp(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		min, max float64
	}{
		{"min raised above max", Options{MinStarRadius: Ptr(2.0)}, 2, 2},
		{"max lowered below min", Options{MaxStarRadius: Ptr(0.2)}, 0.2, 0.2},
		{"both inverted", Options{MinStarRadius: Ptr(3.0), MaxStarRadius: Ptr(1.0)}, 3, 3},
		{"valid range", Options{MinStarRadius: Ptr(1.0), MaxStarRadius: Ptr(4.0)}, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 800, 600, smallConfig())
			h.engine.Configure(tt.opts, false)

			cfg := h.engine.Config()
			if cfg.MinStarRadius != tt.min || cfg.MaxStarRadius != tt.max {
				t.Errorf("radius = [%v, %v], expected [%v, %v]", cfg.MinStarRadius, cfg.MaxStarRadius, tt.min, tt.max)
			}
		})
	}
}

func TestConfigureRedraw(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()
	h.rec.reset()

	h.engine.Configure(Options{StarCount: Ptr(5)}, false)
	if got := len(h.engine.Stars()); got != 50 {
		t.Errorf("star count changed without redraw: %d", got)
	}
	if len(h.rec.fills) != 0 {
		t.Errorf("Configure without redraw drew")
	}

	h.engine.Configure(Options{StarCount: Ptr(5), IsReversed: Ptr(true)}, true)
	if got := len(h.engine.Stars()); got != 5 {
		t.Errorf("len(Stars()) = %d, expected 5", got)
	}
	if !h.engine.Config().IsReversed {
		t.Errorf("IsReversed not applied")
	}
}

func TestRedrawBeforeStartSizesSurface(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())

	h.engine.Configure(Options{StarCount: Ptr(10)}, true)

	if w, hh := h.rec.Size(); w != 800 || hh != 600 {
		t.Fatalf("backing store = %dx%d, expected 800x600", w, hh)
	}
	if h.rec.resets != 1 {
		t.Errorf("surface sized %d times, expected 1", h.rec.resets)
	}
	minDist := h.engine.Config().MinInitialDist
	for i, s := range h.engine.Stars() {
		if s.Dist < minDist {
			t.Fatalf("star %d dist = %v, expected at least %v", i, s.Dist, minDist)
		}
	}
	if h.engine.State() != StateRunning || h.loop.Pending() != 1 {
		t.Errorf("state = %v pending = %d, expected running with one frame", h.engine.State(), h.loop.Pending())
	}
}

func TestConfigReturnsCopy(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	cfg := h.engine.Config()
	cfg.SideColors[0] = "mutated"

	if h.engine.Config().SideColors[0] == "mutated" {
		t.Errorf("Config() exposed internal slice")
	}
}

func TestColorTransition(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()

	start := h.engine.Palette().Main
	red := core.Color{R: 255, A: 1}
	h.engine.SetMainColor("#ff0000")

	if !h.engine.Transitioning() {
		t.Fatalf("SetMainColor did not start a transition")
	}

	mid := h.engine.colors.displayed(h.clock.Now().Add(500 * time.Millisecond))
	if !approxColor(mid.Main, core.Lerp(start, red, 0.5)) {
		t.Errorf("midpoint main = %v, expected %v", mid.Main, core.Lerp(start, red, 0.5))
	}
	if mid.Main.R != 157.5 || mid.Main.B != 75 {
		t.Errorf("midpoint main = %v, expected rgba(157.5, 0, 75, 1)", mid.Main)
	}

	h.advance(time.Second)
	if h.engine.Transitioning() {
		t.Errorf("transition still active at T+D")
	}
	if !approxColor(h.engine.Palette().Main, red) {
		t.Errorf("Palette().Main = %v, expected red", h.engine.Palette().Main)
	}
}

func TestColorTransitionRetargetMidway(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()

	start := h.engine.Palette().Main
	h.engine.SetMainColor("#ff0000")
	h.clock.Advance(500 * time.Millisecond)
	h.engine.SetMainColor("#0000ff")

	mid := core.Lerp(start, core.Color{R: 255, A: 1}, 0.5)
	if !approxColor(h.engine.Palette().Main, mid) {
		t.Errorf("retarget froze %v, expected %v", h.engine.Palette().Main, mid)
	}
	if !approxColor(h.engine.TargetPalette().Main, core.Color{B: 255, A: 1}) {
		t.Errorf("TargetPalette().Main = %v, expected blue", h.engine.TargetPalette().Main)
	}
}

func TestSetSideColors(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	current := h.engine.Palette()

	h.engine.SetSideColors([]string{"#00ff00"})
	target := h.engine.TargetPalette()

	if !approxColor(target.Side[0], core.Color{G: 255, A: 1}) {
		t.Errorf("Side[0] = %v, expected green", target.Side[0])
	}
	for i := 1; i < SideColorSlots; i++ {
		if target.Side[i] != current.Side[i] {
			t.Errorf("Side[%d] = %v, expected padding with current %v", i, target.Side[i], current.Side[i])
		}
	}
	if target.Main != current.Main {
		t.Errorf("SetSideColors changed main colour")
	}

	h.engine.SetSideColors([]string{"#111", "#222", "#333", "#444", "#555"})
	if got := h.engine.Config().SideColors; len(got) != SideColorSlots {
		t.Errorf("Config().SideColors = %v, expected truncation to %d", got, SideColorSlots)
	}
}

func TestMalformedColorFadesToBlack(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.SetMainColor("not-a-color")
	h.engine.SetSideColors([]string{"rgb(1, 2)"})

	if got := h.engine.TargetPalette().Main; got != core.Black {
		t.Errorf("TargetPalette().Main = %v, expected black", got)
	}
	if got := h.engine.TargetPalette().Side[0]; got != core.Black {
		t.Errorf("TargetPalette().Side[0] = %v, expected black", got)
	}
}

func TestInitialConfigColorsApplyWithoutTransition(t *testing.T) {
	cfg := smallConfig()
	cfg.MainColor = "#102030"
	h := newHarness(t, 800, 600, cfg)

	if h.engine.Transitioning() {
		t.Errorf("initial colours started a transition")
	}
	if got := h.engine.Palette().Main; got != (core.Color{R: 16, G: 32, B: 48, A: 1}) {
		t.Errorf("Palette().Main = %v", got)
	}
}

func TestRunForDuration(t *testing.T) {
	h := newHarness(t, 2000, 2000, smallConfig())
	h.engine.Start()
	h.engine.stars = []Star{{Angle: 0, Dist: 300, Radius: 1}}

	var frames []float64
	done := 0
	h.engine.RunForDuration(time.Second, Linear, func() { done++ }, func(p float64) { frames = append(frames, p) }, 100)

	if h.loop.Pending() != 1 {
		t.Fatalf("Pending() = %d, expected only the jump frame", h.loop.Pending())
	}

	h.advance(500 * time.Millisecond)
	s := h.engine.Stars()[0]
	if !approx(s.Dist, 350) {
		t.Errorf("Dist at t=0.5 = %v, expected 350", s.Dist)
	}
	if !approx(s.Pos.X, 1350) || !approx(s.Pos.Y, 1000) {
		t.Errorf("Pos at t=0.5 = %+v, expected (1350, 1000)", s.Pos)
	}
	if done != 0 {
		t.Errorf("onDone fired early")
	}

	h.advance(500 * time.Millisecond)
	s = h.engine.Stars()[0]
	if !approx(s.Dist, 400) {
		t.Errorf("Dist at t=1 = %v, expected 400", s.Dist)
	}
	if s.HasTransition {
		t.Errorf("transition fields not cleared")
	}
	if done != 1 {
		t.Errorf("onDone fired %d times, expected 1", done)
	}
	if len(frames) != 2 || frames[0] != 0.5 || frames[1] != 1 {
		t.Errorf("onFrame progress = %v, expected [0.5 1]", frames)
	}
	if h.engine.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", h.engine.State())
	}

	h.advance(time.Second)
	if done != 1 {
		t.Errorf("onDone fired again after completion")
	}
	if h.loop.Pending() != 0 {
		t.Errorf("idle loop restarted without Resume")
	}
}

func TestRunForDurationZero(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()
	h.engine.stars = []Star{{Angle: 0, Dist: 100, Radius: 1}}

	var progress []float64
	done := 0
	h.engine.RunForDuration(0, EaseInOutCirc, func() { done++ }, func(p float64) { progress = append(progress, p) }, 50)
	h.advance(0)

	if done != 1 || len(progress) != 1 || progress[0] != 1 {
		t.Errorf("zero duration: done=%d progress=%v, expected one frame at 1", done, progress)
	}
	if got := h.engine.Stars()[0].Dist; !approx(got, 150) {
		t.Errorf("Dist = %v, expected 150", got)
	}
}

func TestRunForDurationStoppedFromCallback(t *testing.T) {
	h := newHarness(t, 800, 600, smallConfig())
	h.engine.Start()

	h.engine.RunForDuration(time.Second, nil, func() { t.Error("onDone after Destroy") }, func(float64) { h.engine.Destroy() }, 100)
	h.advance(100 * time.Millisecond)

	if h.loop.Pending() != 0 {
		t.Errorf("jump rescheduled after Destroy")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateUninitialized, "uninitialized"},
		{StateReady, "ready"},
		{StateRunning, "running"},
		{StateStopped, "stopped"},
		{StateDestroyed, "destroyed"},
		{StateInert, "inert"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, expected %q", tt.state, got, tt.expected)
		}
	}
}
