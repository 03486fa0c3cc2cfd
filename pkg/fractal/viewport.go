package fractal

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport is the rectangle of the complex plane mapped onto the pixel grid.
type Viewport struct {
	MinReal      float64
	MaxReal      float64
	MinImaginary float64
	MaxImaginary float64
}

// DefaultViewport frames the whole set.
var DefaultViewport = Viewport{
	MinReal:      -2.0,
	MaxReal:      1.0,
	MinImaginary: -1.5,
	MaxImaginary: 1.5,
}

func (v Viewport) Validate() error {
	for _, f := range []float64{v.MinReal, v.MaxReal, v.MinImaginary, v.MaxImaginary} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: bounds must be finite: %v", ErrInvalidViewport, v)
		}
	}
	if v.MinReal >= v.MaxReal {
		return fmt.Errorf("%w: min real %g must be less than max real %g",
			ErrInvalidViewport, v.MinReal, v.MaxReal)
	}
	if v.MinImaginary >= v.MaxImaginary {
		return fmt.Errorf("%w: min imaginary %g must be less than max imaginary %g",
			ErrInvalidViewport, v.MinImaginary, v.MaxImaginary)
	}
	return nil
}

func (v Viewport) Width() float64 {
	return v.MaxReal - v.MinReal
}

func (v Viewport) Height() float64 {
	return v.MaxImaginary - v.MinImaginary
}

// Point maps pixel (x, y) of a width×height grid onto the plane.
// Pixel (0, 0) maps to (MinReal, MinImaginary); rows are not flipped.
func (v Viewport) Point(x, y, width, height int) complex128 {
	r := v.MinReal + v.Width()*float64(x)/float64(width)
	i := v.MinImaginary + v.Height()*float64(y)/float64(height)
	return complex(r, i)
}

// ZoomAt scales the viewport about the point under pixel (px, py) so that
// point stays under the same pixel. Positive steps zoom in, each step by a
// factor of 1.2.
func (v Viewport) ZoomAt(px, py float64, width, height int, steps float64) Viewport {
	factor := math.Pow(1.2, -steps)

	mouseR := v.MinReal + v.Width()*px/float64(width)
	mouseI := v.MinImaginary + v.Height()*py/float64(height)

	return Viewport{
		MinReal:      mouseR - (mouseR-v.MinReal)*factor,
		MaxReal:      mouseR + (v.MaxReal-mouseR)*factor,
		MinImaginary: mouseI - (mouseI-v.MinImaginary)*factor,
		MaxImaginary: mouseI + (v.MaxImaginary-mouseI)*factor,
	}
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", v.MinReal, v.MaxReal, v.MinImaginary, v.MaxImaginary)
}
