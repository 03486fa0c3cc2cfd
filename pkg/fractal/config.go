package fractal

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid render config")

// MaxPixels caps Width*Height. A frame holds 4 bytes of color and one int
// of iteration count per pixel.
const MaxPixels = 1 << 28

// RenderConfig is the immutable raster and iteration setup of one render.
type RenderConfig struct {
	Width         int
	Height        int
	MaxIterations int

	// Power is the exponent of z in z^Power + c; 2 is the Mandelbrot set.
	Power int
}

var DefaultConfig = RenderConfig{
	Width:         800,
	Height:        600,
	MaxIterations: 1000,
	Power:         2,
}

// Validate reports every invalid field at once.
func (c RenderConfig) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got: %d", c.Width))
	}
	if c.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got: %d", c.Height))
	}
	if c.Width > 0 && c.Height > 0 && c.Width > MaxPixels/c.Height {
		errs = append(errs, fmt.Errorf("image %dx%d exceeds %d pixels", c.Width, c.Height, MaxPixels))
	}
	if c.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("max iterations must be positive, got: %d", c.MaxIterations))
	}
	if c.Power < 2 {
		errs = append(errs, fmt.Errorf("power must be at least 2, got: %d", c.Power))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Pixels is the number of pixels in one frame.
func (c RenderConfig) Pixels() int {
	return c.Width * c.Height
}
