package galaxy

import (
	"errors"
	"sort"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

// ErrNoContext is returned by a Surface whose drawing context is unavailable.
var ErrNoContext = errors.New("galaxy: 2D context not available")

// CompositeOp selects how filled pixels combine with what is already drawn.
type CompositeOp int

const (
	SourceOver CompositeOp = iota // Normal alpha blending
	Lighter                       // Additive blending
)

// String returns the canvas name of the operation.
func (op CompositeOp) String() string {
	switch op {
	case SourceOver:
		return "source-over"
	case Lighter:
		return "lighter"
	default:
		return "unknown"
	}
}

// Surface is a drawing target the engine binds to.
type Surface interface {
	// Context returns the 2D drawing context, or ErrNoContext.
	Context() (Context, error)
}

// Context is the subset of a 2D canvas context the engine draws with.
// Coordinates are logical pixels after the current Scale is applied.
type Context interface {
	// SetSize resizes the backing store in device pixels. Like a canvas,
	// this clears the contents and resets transform and drawing state.
	SetSize(width, height int)
	// Size returns the backing store dimensions in device pixels.
	Size() (width, height int)
	// Scale multiplies the current transform.
	Scale(sx, sy float64)

	SetCompositeOp(op CompositeOp)
	SetGlobalAlpha(alpha float64)
	SetFillColor(c core.Color)
	SetFillGradient(g *RadialGradient)
	// SetShadow configures a glow drawn under subsequent fills; blur 0 disables it.
	SetShadow(blur float64, c core.Color)

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	FillCircle(cx, cy, r float64)
}

// ColorStop is one stop of a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  core.Color
}

// RadialGradient fades from its center (offset 0) to Radius (offset 1).
type RadialGradient struct {
	Center core.Point
	Radius float64
	Stops  []ColorStop
}

// NewRadialGradient creates a gradient with no stops.
func NewRadialGradient(center core.Point, radius float64) *RadialGradient {
	return &RadialGradient{Center: center, Radius: radius}
}

// AddColorStop inserts a stop, keeping stops ordered by offset.
func (g *RadialGradient) AddColorStop(offset float64, c core.Color) {
	g.Stops = append(g.Stops, ColorStop{Offset: core.ClampF(offset, 0, 1), Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool {
		return g.Stops[i].Offset < g.Stops[j].Offset
	})
}

// At returns the gradient colour at point p. Beyond the last stop the last
// colour is used, before the first stop the first colour.
func (g *RadialGradient) At(p core.Point) core.Color {
	if len(g.Stops) == 0 {
		return core.Transparent
	}
	offset := 1.0
	if g.Radius > 0 {
		offset = p.Dist(g.Center) / g.Radius
	}

	first := g.Stops[0]
	if offset <= first.Offset {
		return first.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		next := g.Stops[i]
		if offset <= next.Offset {
			prev := g.Stops[i-1]
			span := next.Offset - prev.Offset
			if span <= 0 {
				return next.Color
			}
			return core.Lerp(prev.Color, next.Color, (offset-prev.Offset)/span)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}
