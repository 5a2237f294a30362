package galaxy

import (
	"math"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

const (
	// speedScale turns StarSpeedFactor into a per-frame acceleration factor.
	speedScale = 1e-7
	// respawnMargin lets outward stars leave the visible area before wrapping.
	respawnMargin = 50.0
)

// updateStars advances every star by one frame. With lerp set, stars that
// carry a jump transition are placed at their eased distance instead of
// drifting. Respawn is applied before the position is recomputed, so
// Pos == Polar(center, Angle, Dist) always holds afterwards.
func (e *Engine) updateStars(easeT float64, lerp bool) {
	center := e.center()
	maxDist := e.maxDrawDist()
	boundary := maxDist + respawnMargin
	minDist := e.cfg.MinInitialDist
	reversed := e.cfg.IsReversed
	speed := e.cfg.StarSpeedFactor * speedScale

	for i := range e.stars {
		s := &e.stars[i]

		if lerp && s.HasTransition {
			s.Dist = s.TransitionStart + (s.TransitionTarget-s.TransitionStart)*easeT
		} else {
			d := math.Max(1, math.Abs(s.Dist))
			accel := d * d * speed
			if reversed {
				s.Dist -= accel
			} else {
				s.Dist += accel
			}
		}

		switch {
		case !reversed && s.Dist > boundary:
			s.respawn(minDist+e.rng.Float64()*(maxDist-minDist), e.rng.Float64()*2*math.Pi, easeT)
		case reversed && s.Dist < -minDist:
			s.respawn(boundary, e.rng.Float64()*2*math.Pi, easeT)
		}

		s.Pos = core.Polar(center, s.Angle, s.Dist)
	}
}

// respawn moves the star to dist on a new heading. A running jump is
// rebased so the remaining travel continues from the new distance.
func (s *Star) respawn(dist, angle, easeT float64) {
	if s.HasTransition {
		travel := s.TransitionTarget - s.TransitionStart
		s.TransitionStart = dist - travel*easeT
		s.TransitionTarget = s.TransitionStart + travel
	}
	s.Dist = dist
	s.Angle = angle
}
