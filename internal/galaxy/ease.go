package galaxy

import (
	"math"

	"github.com/vovakirdan/tui-galaxy/internal/registry"
)

// EaseFunc maps linear progress t in [0, 1] to eased progress.
type EaseFunc = registry.Ease

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// EaseOutQuad provides smooth deceleration.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutCirc accelerates and decelerates along a circular curve.
func EaseInOutCirc(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-math.Pow(2*t, 2))) / 2
	}
	return (math.Sqrt(1-math.Pow(-2*t+2, 2)) + 1) / 2
}

// EaseInOutQuart is a steeper symmetric ease.
func EaseInOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

func init() {
	registry.Register("linear", "Linear", Linear)
	registry.Register("ease-out-quad", "Ease out (quadratic)", EaseOutQuad)
	registry.Register("ease-in-out-circ", "Ease in/out (circular)", EaseInOutCirc)
	registry.Register("ease-in-out-quart", "Ease in/out (quartic)", EaseInOutQuart)
}
