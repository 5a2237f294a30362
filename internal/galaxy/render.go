package galaxy

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

const (
	maxStarAlpha      = 0.9
	maxStarSizeFactor = 1.0
	cullMargin        = 50.0
	maxGlow           = 5.0
	middleStop        = 0.7
)

// backgroundColor is the deep violet painted under the nebula.
var backgroundColor = core.Color{R: 13, G: 0, B: 26, A: 1}

// drawNebula paints the background and every patch additively, using the
// palette visible at now.
func (e *Engine) drawNebula(now time.Time) {
	ctx := e.ctx

	ctx.SetShadow(0, core.Transparent)
	ctx.SetCompositeOp(SourceOver)
	ctx.SetGlobalAlpha(1)
	ctx.SetFillColor(backgroundColor)
	ctx.FillRect(0, 0, e.width, e.height)

	colors := e.colors.resolve(now).Colors()

	ctx.SetCompositeOp(Lighter)
	ctx.SetGlobalAlpha(e.cfg.GlobalAlpha)
	for _, p := range e.patches {
		base := colors[p.ColorSlot%len(colors)]

		g := NewRadialGradient(p.Center, p.Radius)
		g.AddColorStop(0, base.WithAlpha(p.CenterAlpha))
		g.AddColorStop(middleStop, base.WithAlpha(p.MiddleAlpha))
		g.AddColorStop(1, base.WithAlpha(0))

		ctx.SetFillGradient(g)
		ctx.FillRect(p.Center.X-p.Radius, p.Center.Y-p.Radius, 2*p.Radius, 2*p.Radius)
	}

	ctx.SetGlobalAlpha(1)
	ctx.SetCompositeOp(SourceOver)
}

// drawStars paints every star that is not culled. Alpha and radius grow
// with the square of the normalized distance from the center.
func (e *Engine) drawStars() {
	maxDist := e.maxDrawDist()
	if maxDist <= 0 {
		return
	}
	ctx := e.ctx
	minAlpha := e.cfg.MinStarAlpha
	minSize := e.cfg.MinStarSizeFactor

	for i := range e.stars {
		s := &e.stars[i]
		d := math.Abs(s.Dist)
		if d >= maxDist+cullMargin {
			continue
		}

		fade := math.Pow(d/maxDist, 2)
		alpha := math.Min(maxStarAlpha, minAlpha+fade*(maxStarAlpha-minAlpha))
		radius := s.Radius * (minSize + fade*(maxStarSizeFactor-minSize))

		if s.Twinkle {
			ctx.SetShadow(e.rng.Float64()*maxGlow, core.White)
		} else {
			ctx.SetShadow(0, core.Transparent)
		}
		ctx.SetFillColor(core.White.WithAlpha(alpha))
		ctx.FillCircle(s.Pos.X, s.Pos.Y, radius)
	}

	ctx.SetShadow(0, core.Transparent)
}

