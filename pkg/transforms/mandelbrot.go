package transforms

// Mandelbrot is the classic quadratic map z*z + c.
type Mandelbrot struct{}

func (Mandelbrot) Next(z, c complex128) complex128 {
	return z*z + c
}

// MandelbrotN generalizes Mandelbrot to z^Power + c.
//
// Power is an integer and the step is exact repeated multiplication, never
// cmplx.Pow.
type MandelbrotN struct {
	Power int
}

func (m MandelbrotN) Next(z, c complex128) complex128 {
	switch m.Power {
	case 2:
		return z*z + c
	case 3:
		return z*z*z + c
	}

	return pow(z, m.Power) + c
}

// pow raises z to a non-negative integer power by squaring.
func pow(z complex128, n int) complex128 {
	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= z
		}
		z *= z
		n >>= 1
	}
	return result
}

// For returns the cheapest Iteration for power.
func For(power int) Iteration {
	if power == 2 {
		return Mandelbrot{}
	}
	return MandelbrotN{Power: power}
}
