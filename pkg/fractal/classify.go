package fractal

import (
	"image/color"

	"github.com/willbeason/mandelbench/pkg/transforms"
)

// EscapeRadiusSquared bounds |z|^2. An orbit keeps iterating only while
// |z|^2 < EscapeRadiusSquared, the strict comparison, in every renderer.
const EscapeRadiusSquared = 4.0

// Sentinel colors pixels whose orbit never escaped.
var Sentinel = color.RGBA{A: 0xff}

// PixelResult is the classification of a single pixel.
type PixelResult struct {
	X, Y       int
	Iterations int
	Color      color.RGBA
}

// Classifier maps pixels to PixelResults for one Viewport and RenderConfig.
type Classifier struct {
	viewport Viewport
	config   RenderConfig
	step     transforms.Iteration
}

// NewClassifier validates vp and cfg and returns a Classifier for them.
func NewClassifier(vp Viewport, cfg RenderConfig) (Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return Classifier{}, err
	}
	if err := vp.Validate(); err != nil {
		return Classifier{}, err
	}

	return Classifier{
		viewport: vp,
		config:   cfg,
		step:     transforms.For(cfg.Power),
	}, nil
}

func (c Classifier) Config() RenderConfig {
	return c.config
}

func (c Classifier) Viewport() Viewport {
	return c.viewport
}

// Escape returns the number of steps taken before |z| reached the escape
// radius, capped at MaxIterations.
func (c Classifier) Escape(p complex128) int {
	z := complex128(0)
	iterations := 0
	for iterations < c.config.MaxIterations && real(z)*real(z)+imag(z)*imag(z) < EscapeRadiusSquared {
		z = c.step.Next(z, p)
		iterations++
	}
	return iterations
}

// Iterations is Escape for pixel (x, y).
func (c Classifier) Iterations(x, y int) int {
	return c.Escape(c.viewport.Point(x, y, c.config.Width, c.config.Height))
}

// Classify computes the full PixelResult for pixel (x, y).
func (c Classifier) Classify(x, y int) PixelResult {
	iterations := c.Iterations(x, y)
	return PixelResult{
		X:          x,
		Y:          y,
		Iterations: iterations,
		Color:      Color(iterations, c.config.MaxIterations),
	}
}

// Classify is the one-shot form of Classifier.Classify.
func Classify(vp Viewport, cfg RenderConfig, x, y int) (PixelResult, error) {
	c, err := NewClassifier(vp, cfg)
	if err != nil {
		return PixelResult{}, err
	}
	return c.Classify(x, y), nil
}
