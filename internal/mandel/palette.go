package mandel

import (
	"image/color"
	"math"
)

// Palette maps iteration counts onto a two-point gradient plus an in-set color.
type Palette struct {
	Base                color.RGBA
	Accent              color.RGBA
	InSet               color.RGBA
	MaxIterations       int
	InterpolateConstant int
	Banding             Banding
}

func DefaultPalette() Palette {
	return DefaultConfig().Palette()
}

func (p Palette) ColorFor(count int) color.RGBA {
	if count == p.MaxIterations {
		return p.InSet
	}
	return Interpolate(p.Base, p.Accent, p.Fraction(count))
}

// Fraction returns the gradient position for count before clamping.
func (p Palette) Fraction(count int) float64 {
	if p.Banding == BandingSmooth {
		return float64(count) / float64(p.InterpolateConstant)
	}
	return float64(count / p.InterpolateConstant)
}

// Interpolate blends from a to b. t <= 0 yields a and t >= 1 yields b.
func Interpolate(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 || math.IsNaN(t) {
		return a
	}
	if t >= 1 {
		return b
	}
	return color.RGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
