package galaxy

import "time"

// Config holds every recognized engine tunable.
type Config struct {
	NebulaCount       int      `yaml:"nebula_count"`
	StarCount         int      `yaml:"star_count"`
	GlobalAlpha       float64  `yaml:"global_alpha"`   // Alpha used while painting nebulae
	MinStarRadius     float64  `yaml:"min_star_radius"`
	MaxStarRadius     float64  `yaml:"max_star_radius"`
	StarSpeedFactor   float64  `yaml:"star_speed_factor"`
	MinStarAlpha      float64  `yaml:"min_star_alpha"`       // Alpha of a star at the center
	MinStarSizeFactor float64  `yaml:"min_star_size_factor"` // Radius multiplier at the center
	MinInitialDist    float64  `yaml:"min_initial_dist"`
	IsReversed        bool     `yaml:"is_reversed"` // Stars drift inward instead of outward
	MainColor         string   `yaml:"main_color"`
	SideColors        []string `yaml:"side_colors"`

	// Host tunables
	Static             bool          `yaml:"static"` // Draw one frame, never loop
	TargetFPS          int           `yaml:"target_fps"`
	TransitionDuration time.Duration `yaml:"transition_duration"`
}

// DefaultConfig returns the stock galaxy configuration.
func DefaultConfig() Config {
	return Config{
		NebulaCount:       20,
		StarCount:         1200,
		GlobalAlpha:       0.5,
		MinStarRadius:     0.5,
		MaxStarRadius:     1.5,
		StarSpeedFactor:   1.0,
		MinStarAlpha:      0.1,
		MinStarSizeFactor: 0.25,
		MinInitialDist:    50,
		IsReversed:        false,
		MainColor:         "rgba(60, 0, 150, 1)",
		SideColors: []string{
			"rgba(200, 50, 100, 1)",
			"rgba(0, 180, 255, 1)",
			"rgba(255, 120, 0, 1)",
		},
		Static:             false,
		TargetFPS:          30,
		TransitionDuration: time.Second,
	}
}

// Options is a partial Config. Nil fields are left untouched by Configure.
type Options struct {
	NebulaCount       *int     `yaml:"nebula_count,omitempty"`
	StarCount         *int     `yaml:"star_count,omitempty"`
	GlobalAlpha       *float64 `yaml:"global_alpha,omitempty"`
	MinStarRadius     *float64 `yaml:"min_star_radius,omitempty"`
	MaxStarRadius     *float64 `yaml:"max_star_radius,omitempty"`
	StarSpeedFactor   *float64 `yaml:"star_speed_factor,omitempty"`
	MinStarAlpha      *float64 `yaml:"min_star_alpha,omitempty"`
	MinStarSizeFactor *float64 `yaml:"min_star_size_factor,omitempty"`
	MinInitialDist    *float64 `yaml:"min_initial_dist,omitempty"`
	IsReversed        *bool    `yaml:"is_reversed,omitempty"`
	MainColor         *string  `yaml:"main_color,omitempty"`
	SideColors        []string `yaml:"side_colors,omitempty"`

	Static             *bool          `yaml:"static,omitempty"`
	TargetFPS          *int           `yaml:"target_fps,omitempty"`
	TransitionDuration *time.Duration `yaml:"transition_duration,omitempty"`
}

// Ptr returns a pointer to v, for filling Options literals.
func Ptr[T any](v T) *T {
	return &v
}

// merge applies the non-nil fields of o on top of c.
func (c Config) merge(o Options) Config {
	if o.NebulaCount != nil {
		c.NebulaCount = *o.NebulaCount
	}
	if o.StarCount != nil {
		c.StarCount = *o.StarCount
	}
	if o.GlobalAlpha != nil {
		c.GlobalAlpha = *o.GlobalAlpha
	}
	if o.MinStarRadius != nil {
		c.MinStarRadius = *o.MinStarRadius
	}
	if o.MaxStarRadius != nil {
		c.MaxStarRadius = *o.MaxStarRadius
	}
	if o.StarSpeedFactor != nil {
		c.StarSpeedFactor = *o.StarSpeedFactor
	}
	if o.MinStarAlpha != nil {
		c.MinStarAlpha = *o.MinStarAlpha
	}
	if o.MinStarSizeFactor != nil {
		c.MinStarSizeFactor = *o.MinStarSizeFactor
	}
	if o.MinInitialDist != nil {
		c.MinInitialDist = *o.MinInitialDist
	}
	if o.IsReversed != nil {
		c.IsReversed = *o.IsReversed
	}
	if o.MainColor != nil {
		c.MainColor = *o.MainColor
	}
	if o.SideColors != nil {
		c.SideColors = append([]string(nil), o.SideColors...)
	}
	if o.Static != nil {
		c.Static = *o.Static
	}
	if o.TargetFPS != nil {
		c.TargetFPS = *o.TargetFPS
	}
	if o.TransitionDuration != nil {
		c.TransitionDuration = *o.TransitionDuration
	}

	// Radius inversion is corrected, not reported. The bound the caller
	// did not touch follows the one it did.
	if c.MinStarRadius > c.MaxStarRadius {
		if o.MaxStarRadius != nil && o.MinStarRadius == nil {
			c.MinStarRadius = c.MaxStarRadius
		} else {
			c.MaxStarRadius = c.MinStarRadius
		}
	}

	return c.sanitized()
}

// sanitized replaces values the engine cannot run with.
func (c Config) sanitized() Config {
	if c.NebulaCount < 0 {
		c.NebulaCount = 0
	}
	if c.StarCount < 0 {
		c.StarCount = 0
	}
	if c.MinStarRadius > c.MaxStarRadius {
		c.MaxStarRadius = c.MinStarRadius
	}
	if c.TargetFPS <= 0 {
		c.TargetFPS = 30
	}
	if c.TransitionDuration < 0 {
		c.TransitionDuration = 0
	}
	return c
}
