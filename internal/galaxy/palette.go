package galaxy

import (
	"time"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

// SideColorSlots is the fixed number of side colours in a palette.
const SideColorSlots = 3

// Palette is the main nebula colour plus the side colours.
type Palette struct {
	Main core.Color
	Side [SideColorSlots]core.Color
}

// Colors returns main followed by the side colours; nebula patch i uses
// Colors()[i % len].
func (p Palette) Colors() []core.Color {
	out := make([]core.Color, 0, 1+SideColorSlots)
	out = append(out, p.Main)
	out = append(out, p.Side[:]...)
	return out
}

// lerpPalette interpolates every channel of every colour independently.
func lerpPalette(a, b Palette, t float64) Palette {
	out := Palette{Main: core.Lerp(a.Main, b.Main, t)}
	for i := range out.Side {
		out.Side[i] = core.Lerp(a.Side[i], b.Side[i], t)
	}
	return out
}

// paletteFromStrings parses main and side colours. Missing side slots keep
// the colour from base; extra entries are dropped.
func paletteFromStrings(main string, side []string, base Palette) Palette {
	p := base
	if main != "" {
		p.Main, _ = core.ParseColor(main)
	}
	for i := 0; i < SideColorSlots && i < len(side); i++ {
		p.Side[i], _ = core.ParseColor(side[i])
	}
	return p
}

// colorTransition is the current/target palette pair and its timer.
type colorTransition struct {
	current  Palette
	target   Palette
	start    time.Time
	duration time.Duration
	active   bool
}

// progress returns the clamped transition progress at now.
func (c *colorTransition) progress(now time.Time) float64 {
	if c.duration <= 0 {
		return 1
	}
	t := float64(now.Sub(c.start)) / float64(c.duration)
	return core.ClampF(t, 0, 1)
}

// displayed returns the palette visible at now without committing anything.
func (c *colorTransition) displayed(now time.Time) Palette {
	if !c.active {
		return c.current
	}
	t := c.progress(now)
	if t >= 1 {
		return c.target
	}
	return lerpPalette(c.current, c.target, t)
}

// resolve returns the palette to draw at now and commits the target once
// the transition is complete.
func (c *colorTransition) resolve(now time.Time) Palette {
	p := c.displayed(now)
	if c.active && c.progress(now) >= 1 {
		c.current = c.target
		c.active = false
	}
	return p
}

// retarget prepares a new transition starting at now. A transition already
// in flight is frozen at its visible colours so the fade does not jump.
func (c *colorTransition) retarget(now time.Time, duration time.Duration) {
	if c.active {
		c.current = c.displayed(now)
	} else {
		c.target = c.current
	}
	c.start = now
	c.duration = duration
	c.active = true
}
