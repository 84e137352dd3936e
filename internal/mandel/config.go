package mandel

import (
	"image/color"
	"math"
)

const (
	DefaultWidth               = 600
	DefaultHeight              = 600
	DefaultMaxIterations       = 100
	DefaultRadius              = 2.0
	DefaultMoveAmount          = 0.2
	DefaultZoomAmount          = 0.2
	DefaultInterpolateConstant = 13

	DefaultCornerReal = -2.3
	DefaultCornerImag = 1.8
	DefaultSideLength = 3.6
)

var (
	Goldenrod = color.RGBA{R: 218, G: 165, B: 32, A: 255}
	Cyan      = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Blue      = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// Banding selects how the gradient fraction is computed from a count.
type Banding int

const (
	// BandingStepped divides count by the interpolate constant as integers,
	// giving two flat bands.
	BandingStepped Banding = iota
	// BandingSmooth divides as floats and clamps to [0, 1].
	BandingSmooth
)

func (b Banding) String() string {
	switch b {
	case BandingSmooth:
		return "smooth"
	default:
		return "stepped"
	}
}

// ParseBanding accepts "stepped" or "smooth"; the empty string is stepped.
func ParseBanding(s string) (Banding, error) {
	switch s {
	case "", "stepped":
		return BandingStepped, nil
	case "smooth":
		return BandingSmooth, nil
	}
	return BandingStepped, &ConfigError{Field: "banding", Reason: "must be stepped or smooth, got " + s}
}

// Config bundles every engine parameter.
type Config struct {
	Width               int
	Height              int
	MaxIterations       int
	Radius              float64
	MoveAmount          float64
	ZoomAmount          float64
	InterpolateConstant int
	Banding             Banding

	Base   color.RGBA
	Accent color.RGBA
	InSet  color.RGBA

	// Home is the viewport restored by CmdReset.
	Home Viewport

	// MinSideLength clamps zooming in when positive. Zero leaves zoom unbounded.
	MinSideLength float64

	// Workers > 1 renders row bands concurrently.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		MaxIterations:       DefaultMaxIterations,
		Radius:              DefaultRadius,
		MoveAmount:          DefaultMoveAmount,
		ZoomAmount:          DefaultZoomAmount,
		InterpolateConstant: DefaultInterpolateConstant,
		Banding:             BandingStepped,
		Base:                Goldenrod,
		Accent:              Cyan,
		InSet:               Blue,
		Home:                DefaultViewport(),
		Workers:             1,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &ConfigError{Field: "width", Reason: "must be positive"}
	case c.Height <= 0:
		return &ConfigError{Field: "height", Reason: "must be positive"}
	case c.MaxIterations <= 0:
		return &ConfigError{Field: "max_iterations", Reason: "must be positive"}
	case !(c.Radius > 0) || math.IsInf(c.Radius, 0):
		return &ConfigError{Field: "radius", Reason: "must be positive and finite"}
	case c.MoveAmount < 0 || math.IsNaN(c.MoveAmount):
		return &ConfigError{Field: "move_amount", Reason: "must not be negative"}
	case c.ZoomAmount < 0 || c.ZoomAmount >= 1 || math.IsNaN(c.ZoomAmount):
		return &ConfigError{Field: "zoom_amount", Reason: "must be in [0, 1)"}
	case c.InterpolateConstant <= 0:
		return &ConfigError{Field: "interpolate_constant", Reason: "must be positive"}
	case c.MinSideLength < 0:
		return &ConfigError{Field: "min_side_length", Reason: "must not be negative"}
	case c.Workers < 0:
		return &ConfigError{Field: "workers", Reason: "must not be negative"}
	}
	if err := c.Home.Validate(); err != nil {
		return &ConfigError{Field: "home", Reason: err.Error()}
	}
	return nil
}

func (c Config) Evaluator() Evaluator {
	return Evaluator{MaxIterations: c.MaxIterations, Radius: c.Radius}
}

func (c Config) Palette() Palette {
	return Palette{
		Base:                c.Base,
		Accent:              c.Accent,
		InSet:               c.InSet,
		MaxIterations:       c.MaxIterations,
		InterpolateConstant: c.InterpolateConstant,
		Banding:             c.Banding,
	}
}
