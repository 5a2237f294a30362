package galaxy

import (
	"math"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

const (
	twinkleChance = 0.1

	nebulaMinRadius   = 200.0
	nebulaRadiusRange = 300.0
)

// Star is one point of the field, positioned in polar coordinates around
// the viewport center. A negative Dist puts the star on the opposite side.
type Star struct {
	Angle   float64
	Dist    float64
	Pos     core.Point // Always Polar(center, Angle, Dist)
	Radius  float64    // Base radius before distance scaling
	Twinkle bool

	// Jump animation state, set only during RunForDuration
	HasTransition    bool
	TransitionStart  float64
	TransitionTarget float64
}

// NebulaPatch is one radial-gradient blob of the background.
type NebulaPatch struct {
	Center      core.Point
	Radius      float64
	ColorSlot   int // Index into Palette.Colors()
	CenterAlpha float64
	MiddleAlpha float64
}

// nebulaGeometry is the part of a patch that survives redraws while the
// viewport and patch count are unchanged.
type nebulaGeometry struct {
	center      core.Point
	radius      float64
	centerAlpha float64
	middleAlpha float64
}

// center returns the logical viewport center.
func (e *Engine) center() core.Point {
	return core.Point{X: e.width / 2, Y: e.height / 2}
}

// maxDrawDist is half the larger viewport dimension.
func (e *Engine) maxDrawDist() float64 {
	return math.Max(e.width, e.height) / 2
}

// initStars regenerates the whole field with distances spread over
// [MinInitialDist, maxDrawDist).
func (e *Engine) initStars() {
	cfg := e.cfg
	center := e.center()
	maxDist := e.maxDrawDist()

	e.stars = make([]Star, cfg.StarCount)
	for i := range e.stars {
		angle := e.rng.Float64() * 2 * math.Pi
		dist := cfg.MinInitialDist + e.rng.Float64()*(maxDist-cfg.MinInitialDist)
		e.stars[i] = Star{
			Angle:   angle,
			Dist:    dist,
			Pos:     core.Polar(center, angle, dist),
			Radius:  cfg.MinStarRadius + e.rng.Float64()*(cfg.MaxStarRadius-cfg.MinStarRadius),
			Twinkle: e.rng.Float64() < twinkleChance,
		}
	}
}

// initNebulaGeometry picks patch positions, radii and alphas for the
// current viewport.
func (e *Engine) initNebulaGeometry() {
	e.geometry = make([]nebulaGeometry, e.cfg.NebulaCount)
	for i := range e.geometry {
		e.geometry[i] = nebulaGeometry{
			center: core.Point{
				X: e.rng.Float64() * e.width,
				Y: e.rng.Float64() * e.height,
			},
			radius:      nebulaMinRadius + e.rng.Float64()*nebulaRadiusRange,
			centerAlpha: 0.2 + e.rng.Float64()*0.2,
			middleAlpha: 0.05 + e.rng.Float64()*0.1,
		}
	}
	e.geomW, e.geomH = e.width, e.height
}

// initNebula rebuilds the patch list from the cached geometry, cycling
// through the palette slots.
func (e *Engine) initNebula() {
	slots := 1 + SideColorSlots
	e.patches = make([]NebulaPatch, len(e.geometry))
	for i, g := range e.geometry {
		e.patches[i] = NebulaPatch{
			Center:      g.center,
			Radius:      g.radius,
			ColorSlot:   i % slots,
			CenterAlpha: g.centerAlpha,
			MiddleAlpha: g.middleAlpha,
		}
	}
}

// clearTransitions drops the jump state from every star.
func (e *Engine) clearTransitions() {
	for i := range e.stars {
		e.stars[i].HasTransition = false
		e.stars[i].TransitionStart = 0
		e.stars[i].TransitionTarget = 0
	}
}
