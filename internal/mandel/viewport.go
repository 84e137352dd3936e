package mandel

import (
	"fmt"
	"math"
)

// Viewport is a square window onto the plane. Corner is the plane point
// at pixel (0,0), the top-left of the window.
type Viewport struct {
	Corner     Complex
	SideLength float64
}

func DefaultViewport() Viewport {
	return Viewport{
		Corner:     Complex{Re: DefaultCornerReal, Im: DefaultCornerImag},
		SideLength: DefaultSideLength,
	}
}

// Reset returns the default viewport regardless of the receiver.
func (v Viewport) Reset() Viewport {
	return DefaultViewport()
}

func (v Viewport) PanUp(amount float64) Viewport {
	v.Corner.Im += v.SideLength * amount
	return v
}

func (v Viewport) PanDown(amount float64) Viewport {
	v.Corner.Im -= v.SideLength * amount
	return v
}

func (v Viewport) PanLeft(amount float64) Viewport {
	v.Corner.Re -= v.SideLength * amount
	return v
}

func (v Viewport) PanRight(amount float64) Viewport {
	v.Corner.Re += v.SideLength * amount
	return v
}

// ZoomIn shrinks the side by (1 - amount). The corner stays fixed, so
// the image zooms towards the top-left.
func (v Viewport) ZoomIn(amount float64) Viewport {
	v.SideLength *= 1 - amount
	return v
}

// ZoomOut grows the side by (1 + amount). Not the inverse of ZoomIn.
func (v Viewport) ZoomOut(amount float64) Viewport {
	v.SideLength *= 1 + amount
	return v
}

// Unit is the plane distance between adjacent pixels for a grid of the
// given height.
func (v Viewport) Unit(height int) float64 {
	return v.SideLength / float64(height)
}

// PointAt maps pixel (x, y) to the plane. Row 0 lies one unit below the
// corner, so the corner row itself is never sampled.
func (v Viewport) PointAt(x, y, height int) Complex {
	unit := v.Unit(height)
	return Complex{
		Re: v.Corner.Re + float64(x)*unit,
		Im: v.Corner.Im - float64(y+1)*unit,
	}
}

func (v Viewport) Center() Complex {
	half := v.SideLength / 2
	return Complex{Re: v.Corner.Re + half, Im: v.Corner.Im - half}
}

// Magnification is the zoom factor relative to the default side length.
func (v Viewport) Magnification() float64 {
	return DefaultSideLength / v.SideLength
}

func (v Viewport) Validate() error {
	if !v.Corner.IsValid() {
		return fmt.Errorf("%w: corner %v", ErrInvalidViewport, v.Corner)
	}
	if !(v.SideLength > 0) || math.IsInf(v.SideLength, 0) {
		return fmt.Errorf("%w: side length %g", ErrInvalidViewport, v.SideLength)
	}
	return nil
}

func (v Viewport) String() string {
	return fmt.Sprintf("corner=%v side=%g", v.Corner, v.SideLength)
}
