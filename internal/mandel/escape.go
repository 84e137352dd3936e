package mandel

// Evaluator runs the bounded escape-time iteration.
type Evaluator struct {
	MaxIterations int
	Radius        float64
}

func DefaultEvaluator() Evaluator {
	return Evaluator{MaxIterations: DefaultMaxIterations, Radius: DefaultRadius}
}

// Iterate returns the number of completed iterations before |z| exceeded
// the radius, or MaxIterations when the orbit never escaped. The orbit
// starts at z = c and escape is checked after each update.
func (e Evaluator) Iterate(c Complex) int {
	z := c
	for m := 0; m < e.MaxIterations; m++ {
		z = z.Mul(z).Add(c)
		if z.Modulus() > e.Radius {
			return m
		}
	}
	return e.MaxIterations
}

// InSet reports whether c did not escape within the iteration cap.
func (e Evaluator) InSet(c Complex) bool {
	return e.Iterate(c) == e.MaxIterations
}

// Orbit returns the successive z values up to and including the escaping
// one, capped at MaxIterations entries.
func (e Evaluator) Orbit(c Complex) []Complex {
	orbit := make([]Complex, 0, 16)
	z := c
	for m := 0; m < e.MaxIterations; m++ {
		z = z.Mul(z).Add(c)
		orbit = append(orbit, z)
		if z.Modulus() > e.Radius {
			break
		}
	}
	return orbit
}
