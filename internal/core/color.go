package core

import (
	"math"
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) RGBA colour.
// R, G and B are in [0, 255]; A is in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Predefined colors.
var (
	Black       = Color{R: 0, G: 0, B: 0, A: 1}
	White       = Color{R: 255, G: 255, B: 255, A: 1}
	Transparent = Color{}
)

// RGBA builds a colour from its four channels, clamping each to its range.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}.clamped()
}

// ParseColor converts a colour string to a Color.
// Accepted forms are #RGB, #RGBA, #RRGGBB, #RRGGBBAA, rgb(r, g, b) and
// rgba(r, g, b, a). Returns opaque black and false if the string is not
// recognized.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	return parseFunctional(strings.ToLower(s))
}

// parseHex handles the part after '#'.
func parseHex(hex string) (Color, bool) {
	switch len(hex) {
	case 3, 4:
		// Expand shorthand: "abc" -> "aabbcc"
		var sb strings.Builder
		for _, r := range hex {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		hex = sb.String()
	case 6, 8:
	default:
		return Black, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Black, false
	}

	if len(hex) == 6 {
		return Color{
			R: float64(v >> 16 & 0xff),
			G: float64(v >> 8 & 0xff),
			B: float64(v & 0xff),
			A: 1,
		}, true
	}
	return Color{
		R: float64(v >> 24 & 0xff),
		G: float64(v >> 16 & 0xff),
		B: float64(v >> 8 & 0xff),
		A: float64(v&0xff) / 255,
	}, true
}

// parseFunctional handles rgb(...) and rgba(...).
func parseFunctional(s string) (Color, bool) {
	var body string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return Black, false
	}

	parts := strings.Split(body, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return Black, false
	}

	ch := [4]float64{0, 0, 0, 1}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Black, false
		}
		ch[i] = v
	}
	return RGBA(ch[0], ch[1], ch[2], ch[3]), true
}

// String returns the functional form "rgba(r, g, b, a)".
// The output parses back to exactly the same channel values.
func (c Color) String() string {
	return "rgba(" + formatChannel(c.R) + ", " + formatChannel(c.G) + ", " +
		formatChannel(c.B) + ", " + formatChannel(c.A) + ")"
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WithAlpha returns the same hue with a different alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = ClampF(a, 0, 1)
	return c
}

// RGB8 returns the colour channels rounded to bytes, ignoring alpha.
func (c Color) RGB8() (r, g, b uint8) {
	c = c.clamped()
	return uint8(math.Round(c.R)), uint8(math.Round(c.G)), uint8(math.Round(c.B))
}

// Lerp linearly interpolates each channel from a to b.
// t is not clamped.
func Lerp(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func (c Color) clamped() Color {
	return Color{
		R: ClampF(c.R, 0, 255),
		G: ClampF(c.G, 0, 255),
		B: ClampF(c.B, 0, 255),
		A: ClampF(c.A, 0, 1),
	}
}
