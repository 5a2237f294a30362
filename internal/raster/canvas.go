// Package raster is a small CPU implementation of galaxy.Context backed by
// an *image.RGBA. Disc and glow coverage comes from x/image/vector; the
// canvas composites it with the two operations the engine uses.
package raster

import (
	"image"
	"math"

	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
)

// Canvas is a software drawing surface. It implements both galaxy.Surface
// and galaxy.Context.
type Canvas struct {
	img *image.RGBA

	// Minimum dot radius in device pixels. Keeps sub-pixel stars visible
	// on very coarse surfaces such as terminal cells.
	minDot float64

	sx, sy    float64
	op        galaxy.CompositeOp
	alpha     float64
	fill      core.Color
	gradient  *galaxy.RadialGradient
	glow      float64
	glowColor core.Color

	cov coverage
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithMinDotRadius sets the smallest radius, in device pixels, a filled
// circle is drawn with.
func WithMinDotRadius(r float64) Option {
	return func(c *Canvas) { c.minDot = r }
}

// New creates a transparent canvas of the given device size.
func New(width, height int, opts ...Option) *Canvas {
	c := &Canvas{}
	for _, opt := range opts {
		opt(c)
	}
	c.SetSize(width, height)
	return c
}

// Context returns the canvas itself.
func (c *Canvas) Context() (galaxy.Context, error) {
	return c, nil
}

// Image returns the backing image. It is replaced on SetSize.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// SetSize reallocates the backing image and resets drawing state.
func (c *Canvas) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.sx, c.sy = 1, 1
	c.op = galaxy.SourceOver
	c.alpha = 1
	c.fill = core.Black
	c.gradient = nil
	c.glow = 0
	c.glowColor = core.Transparent
}

// Size returns the device size.
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Scale multiplies the current transform.
func (c *Canvas) Scale(sx, sy float64) {
	c.sx *= sx
	c.sy *= sy
}

func (c *Canvas) SetCompositeOp(op galaxy.CompositeOp) {
	c.op = op
}

func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.alpha = core.ClampF(alpha, 0, 1)
}

func (c *Canvas) SetFillColor(col core.Color) {
	c.fill = col
	c.gradient = nil
}

func (c *Canvas) SetFillGradient(g *galaxy.RadialGradient) {
	c.gradient = g
}

func (c *Canvas) SetShadow(blur float64, col core.Color) {
	c.glow = math.Max(0, blur)
	c.glowColor = col
}

// ClearRect makes the rectangle fully transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := c.deviceRect(x, y, w, h)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		i := c.img.PixOffset(r.Min.X, py)
		clear(c.img.Pix[i : i+4*r.Dx()])
	}
}

// FillRect fills the rectangle with the current colour or gradient.
// Gradients are sampled at each pixel center in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64) {
	r := c.deviceRect(x, y, w, h)
	if r.Empty() {
		return
	}

	g := c.gradient
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			col := c.fill
			if g != nil {
				col = g.At(core.Point{X: (float64(px) + 0.5) / c.sx, Y: (float64(py) + 0.5) / c.sy})
			}
			blendPixel(c.img, px, py, col, c.alpha, c.op)
		}
	}
}

// FillCircle draws an anti-aliased disc, preceded by a glow when a shadow
// is set.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	if r <= 0 && c.minDot <= 0 {
		return
	}
	dx, dy := cx*c.sx, cy*c.sy
	dr := math.Max(r*(c.sx+c.sy)/2, c.minDot)

	if c.glow > 0 && c.glowColor.A > 0 {
		c.fillGlow(dx, dy, dr, c.glow*(c.sx+c.sy)/2)
	}
	c.fillDisc(dx, dy, dr, c.fill)
}

// fillDisc composites the disc's rasterized coverage. Discs smaller than
// a pixel deposit their area into the pixel under the center.
func (c *Canvas) fillDisc(cx, cy, r float64, col core.Color) {
	b := c.img.Bounds()
	if r < 0.5 {
		px, py := int(math.Floor(cx)), int(math.Floor(cy))
		if image.Pt(px, py).In(b) {
			blendPixel(c.img, px, py, col, c.alpha*math.Pi*r*r, c.op)
		}
		return
	}

	area := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)),
	).Intersect(b)
	if area.Empty() {
		return
	}

	c.cov.disc(area, cx, cy, r)
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			if a := c.cov.at(area, px, py); a > 0 {
				blendPixel(c.img, px, py, col, c.alpha*a, c.op)
			}
		}
	}
}

// fillGlow paints a halo that fades quadratically from the disc edge to
// blur pixels beyond it. The outer edge is anti-aliased by coverage.
func (c *Canvas) fillGlow(cx, cy, r, blur float64) {
	outer := r + blur
	area := image.Rect(
		int(math.Floor(cx-outer)), int(math.Floor(cy-outer)),
		int(math.Ceil(cx+outer)), int(math.Ceil(cy+outer)),
	).Intersect(c.img.Bounds())
	if area.Empty() {
		return
	}

	c.cov.disc(area, cx, cy, outer)
	for py := area.Min.Y; py < area.Max.Y; py++ {
		for px := area.Min.X; px < area.Max.X; px++ {
			a := c.cov.at(area, px, py)
			if a == 0 {
				continue
			}
			falloff := 1.0
			if d := math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy); d > r {
				f := math.Max(0, 1-(d-r)/blur)
				falloff = f * f
			}
			blendPixel(c.img, px, py, c.glowColor, c.alpha*a*falloff*glowStrength, c.op)
		}
	}
}

// glowStrength scales the halo relative to the disc colour.
const glowStrength = 0.5

// deviceRect maps a logical rectangle to device pixels, clipped to the image.
func (c *Canvas) deviceRect(x, y, w, h float64) image.Rectangle {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	r := image.Rect(
		int(math.Round(x*c.sx)), int(math.Round(y*c.sy)),
		int(math.Round((x+w)*c.sx)), int(math.Round((y+h)*c.sy)),
	)
	return r.Intersect(c.img.Bounds())
}
