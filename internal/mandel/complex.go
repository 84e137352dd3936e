package mandel

import (
	"fmt"
	"math"
)

// Complex is a point on the complex plane.
type Complex struct {
	Re float64
	Im float64
}

func NewComplex(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

func (a Complex) Complex128() complex128 {
	return complex(a.Re, a.Im)
}

func (a Complex) Add(b Complex) Complex {
	return Complex{Re: a.Re + b.Re, Im: a.Im + b.Im}
}

func (a Complex) Sub(b Complex) Complex {
	return Complex{Re: a.Re - b.Re, Im: a.Im - b.Im}
}

// Mul returns the complex product a*b. The real part is ar*br - ai*bi.
func (a Complex) Mul(b Complex) Complex {
	return Complex{
		Re: a.Re*b.Re - a.Im*b.Im,
		Im: a.Im*b.Re + a.Re*b.Im,
	}
}

// AbsSq returns Re^2 + Im^2 without the square root.
func (a Complex) AbsSq() float64 {
	return a.Re*a.Re + a.Im*a.Im
}

func (a Complex) Modulus() float64 {
	return math.Sqrt(a.AbsSq())
}

func (a Complex) IsValid() bool {
	return !math.IsNaN(a.Re) && !math.IsInf(a.Re, 0) &&
		!math.IsNaN(a.Im) && !math.IsInf(a.Im, 0)
}

func (a Complex) String() string {
	return fmt.Sprintf("(%g%+gi)", a.Re, a.Im)
}
