package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

const (
	// maxSagitta bounds how far a circle's polygon falls inside the true
	// edge, in device pixels.
	maxSagitta = 0.02

	minCircleSegments = 16
)

// coverage rasterizes discs into a reusable alpha mask.
type coverage struct {
	z    *vector.Rasterizer
	mask *image.Alpha
}

// disc returns the coverage of the disc (cx, cy, r) over area, in device
// pixels. The mask origin is area.Min and it is valid until the next call.
func (cv *coverage) disc(area image.Rectangle, cx, cy, r float64) *image.Alpha {
	w, h := area.Dx(), area.Dy()
	if cv.z == nil {
		cv.z = vector.NewRasterizer(w, h)
	} else {
		cv.z.Reset(w, h)
	}
	cv.z.DrawOp = draw.Src

	if n := w * h; cv.mask == nil || cap(cv.mask.Pix) < n {
		cv.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	} else {
		cv.mask.Pix = cv.mask.Pix[:n]
		cv.mask.Stride = w
		cv.mask.Rect = image.Rect(0, 0, w, h)
	}

	ox, oy := cx-float64(area.Min.X), cy-float64(area.Min.Y)
	n := circleSegments(r)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		x := float32(ox + r*math.Cos(theta))
		y := float32(oy + r*math.Sin(theta))
		if i == 0 {
			cv.z.MoveTo(x, y)
		} else {
			cv.z.LineTo(x, y)
		}
	}
	cv.z.ClosePath()

	// Src writes every mask pixel, so the reused buffer needs no clearing.
	cv.z.Draw(cv.mask, cv.mask.Bounds(), image.Opaque, image.Point{})
	return cv.mask
}

// at returns the coverage in [0, 1] of device pixel (x, y) from a mask
// produced for area.
func (cv *coverage) at(area image.Rectangle, x, y int) float64 {
	return float64(cv.mask.Pix[(y-area.Min.Y)*cv.mask.Stride+x-area.Min.X]) / 255
}

// circleSegments returns how many polygon edges keep a circle of radius r
// within maxSagitta of its true edge.
func circleSegments(r float64) int {
	if r <= maxSagitta {
		return minCircleSegments
	}
	n := int(math.Ceil(math.Pi / math.Acos(1-maxSagitta/r)))
	return max(n, minCircleSegments)
}
