package render

import (
	"image"

	"github.com/willbeason/mandelbench/pkg/fractal"
)

// A Frame is the output of one render pass: the colored image plus the raw
// escape iteration counts behind it.
//
// Rows are independent: writing row y touches only Iterations[y*Width:(y+1)*Width]
// and the matching span of Image.Pix, so workers that own distinct rows never
// need to synchronize.
type Frame struct {
	Width, Height int
	MaxIterations int
	Iterations    []int
	Image         *image.RGBA
}

func NewFrame(cfg fractal.RenderConfig) *Frame {
	return &Frame{
		Width:         cfg.Width,
		Height:        cfg.Height,
		MaxIterations: cfg.MaxIterations,
		Iterations:    make([]int, cfg.Pixels()),
		Image:         image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
	}
}

// renderRow classifies every pixel of row y.
func (f *Frame) renderRow(c fractal.Classifier, y int) {
	base := y * f.Width
	for x := 0; x < f.Width; x++ {
		iterations := c.Iterations(x, y)
		f.Iterations[base+x] = iterations
		f.Image.SetRGBA(x, y, fractal.Color(iterations, f.MaxIterations))
	}
}

// Pixel returns the classification stored for (x, y).
func (f *Frame) Pixel(x, y int) fractal.PixelResult {
	return fractal.PixelResult{
		X:          x,
		Y:          y,
		Iterations: f.Iterations[y*f.Width+x],
		Color:      f.Image.RGBAAt(x, y),
	}
}

// Equal reports whether both frames hold the same pixels.
func (f *Frame) Equal(other *Frame) bool {
	if f.Width != other.Width || f.Height != other.Height {
		return false
	}
	for i, it := range f.Iterations {
		if other.Iterations[i] != it {
			return false
		}
	}
	for i, b := range f.Image.Pix {
		if other.Image.Pix[i] != b {
			return false
		}
	}
	return true
}

// Inside counts the pixels colored with the sentinel.
func (f *Frame) Inside() int {
	n := 0
	for _, it := range f.Iterations {
		if it >= f.MaxIterations {
			n++
		}
	}
	return n
}
