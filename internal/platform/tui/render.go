package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

// halfBlock draws the foreground in the top half of a cell and the
// background in the bottom half.
const halfBlock = '▀'

// Renderer converts screens to styled strings. Styles are cached per
// colour pair.
type Renderer struct {
	r      *lipgloss.Renderer
	styles map[[2]core.Color]lipgloss.Style
}

// NewRenderer creates a renderer. A nil lipgloss renderer uses the default
// one bound to stdout.
func NewRenderer(r *lipgloss.Renderer) *Renderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Renderer{r: r, styles: make(map[[2]core.Color]lipgloss.Style)}
}

// style returns the cached style for a colour pair.
func (r *Renderer) style(fg, bg core.Color) lipgloss.Style {
	k := [2]core.Color{fg, bg}
	if s, ok := r.styles[k]; ok {
		return s
	}
	s := r.r.NewStyle().
		Foreground(lipgloss.Color(hexColor(fg))).
		Background(lipgloss.Color(hexColor(bg)))
	// The cache only needs to survive a few frames of similar colours.
	if len(r.styles) > 4096 {
		clear(r.styles)
	}
	r.styles[k] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (r *Renderer) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			fg, bg := cell.Fg, cell.Bg

			// Collect consecutive cells with same colors
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Fg != fg || cell.Bg != bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.style(fg, bg).Render(run.String()))
		}
	}
	return sb.String()
}

// PaintImage fills the screen with half-block cells taken from img, which
// must be Width x 2*Height pixels. Existing cells are overwritten.
func PaintImage(s *core.Screen, img *image.RGBA) {
	b := img.Bounds()
	for y := 0; y < s.Height(); y++ {
		top := b.Min.Y + 2*y
		for x := 0; x < s.Width(); x++ {
			px := b.Min.X + x
			s.Set(x, y, core.Cell{
				Rune: halfBlock,
				Fg:   pixelColor(img, px, top),
				Bg:   pixelColor(img, px, top+1),
			})
		}
	}
}

// pixelColor reads a premultiplied pixel as an opaque colour; out of
// bounds reads are black.
func pixelColor(img *image.RGBA, x, y int) core.Color {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return core.Black
	}
	c := img.RGBAAt(x, y)
	if c.A == 0 {
		return core.Black
	}
	scale := 255 / float64(c.A)
	r, g, b := core.RGBA(float64(c.R)*scale, float64(c.G)*scale, float64(c.B)*scale, 1).RGB8()
	return core.Color{R: float64(r), G: float64(g), B: float64(b), A: 1}
}

// TintRect blends every cell of r toward c by amount in [0, 1]. The image
// underneath stays visible through the tint.
func TintRect(s *core.Screen, r core.Rect, c core.Color, amount float64) {
	amount = core.ClampF(amount, 0, 1)
	s.MapRect(r, func(cell core.Cell) core.Cell {
		cell.Fg = blendLab(cell.Fg, c, amount)
		cell.Bg = blendLab(cell.Bg, c, amount)
		return cell
	})
}

// blendLab mixes a toward b by t in CIE L*a*b* space. Alpha is dropped.
func blendLab(a, b core.Color, t float64) core.Color {
	r, g, bl := toColorful(a).BlendLab(toColorful(b), t).Clamped().RGB255()
	return core.Color{R: float64(r), G: float64(g), B: float64(bl), A: 1}
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

// hexColor formats a colour as #rrggbb for lipgloss.
func hexColor(c core.Color) string {
	return toColorful(c).Clamped().Hex()
}
