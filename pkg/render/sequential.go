package render

import (
	"context"
	"log/slog"
	"time"

	"github.com/willbeason/mandelbench/pkg/fractal"
)

// Sequential renders every pixel on the calling goroutine in row-major order
// and returns the frame with the wall-clock time of the traversal. That time is
// the baseline for a following Sweep.
func Sequential(ctx context.Context, vp fractal.Viewport, cfg fractal.RenderConfig, opts ...Option) (*Frame, time.Duration, error) {
	o := buildOptions(opts)

	c, err := fractal.NewClassifier(vp, cfg)
	if err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	frame := NewFrame(cfg)

	start := o.clock()
	for y := 0; y < cfg.Height; y++ {
		o.renderRow(frame, c, y)
	}
	elapsed := o.clock().Sub(start)

	slog.Debug("sequential render finished",
		"width", cfg.Width, "height", cfg.Height, "seconds", elapsed.Seconds())

	return frame, elapsed, nil
}
