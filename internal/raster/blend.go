package raster

import (
	"image"

	"github.com/vovakirdan/tui-galaxy/internal/core"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
)

// blendPixel composites straight colour c with coverage onto the
// premultiplied pixel at (x, y). The caller guarantees (x, y) is in bounds.
func blendPixel(img *image.RGBA, x, y int, c core.Color, coverage float64, op galaxy.CompositeOp) {
	a := c.A * coverage
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}

	i := img.PixOffset(x, y)
	px := img.Pix[i : i+4 : i+4]

	// Source channels, premultiplied, in [0, 255]
	sr := c.R * a
	sg := c.G * a
	sb := c.B * a
	sa := 255 * a

	switch op {
	case galaxy.Lighter:
		px[0] = clamp8(float64(px[0]) + sr)
		px[1] = clamp8(float64(px[1]) + sg)
		px[2] = clamp8(float64(px[2]) + sb)
		px[3] = clamp8(float64(px[3]) + sa)
	default:
		inv := 1 - a
		px[0] = clamp8(sr + float64(px[0])*inv)
		px[1] = clamp8(sg + float64(px[1])*inv)
		px[2] = clamp8(sb + float64(px[2])*inv)
		px[3] = clamp8(sa + float64(px[3])*inv)
	}
}

// clamp8 rounds v to the nearest byte, saturating at 0 and 255.
func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
