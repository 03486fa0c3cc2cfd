package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbench/pkg/fractal"
	"github.com/willbeason/mandelbench/pkg/render"
	"github.com/willbeason/mandelbench/pkg/report"
	"github.com/willbeason/mandelbench/pkg/session"
	"github.com/willbeason/mandelbench/pkg/store"
)

func renderCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render once sequentially, then sweep 1 to max-threads workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return a.runRender(cmd, save)
		},
	}

	flags := cmd.Flags()
	flags.Int("width", fractal.DefaultConfig.Width, "image width in pixels")
	flags.Int("height", fractal.DefaultConfig.Height, "image height in pixels")
	flags.Int("iterations", fractal.DefaultConfig.MaxIterations, "maximum escape iterations per pixel")
	flags.Int("power", fractal.DefaultConfig.Power, "exponent n of z^n + c")
	flags.Float64("min-real", fractal.DefaultViewport.MinReal, "left edge of the viewport")
	flags.Float64("max-real", fractal.DefaultViewport.MaxReal, "right edge of the viewport")
	flags.Float64("min-imaginary", fractal.DefaultViewport.MinImaginary, "top edge of the viewport")
	flags.Float64("max-imaginary", fractal.DefaultViewport.MaxImaginary, "bottom edge of the viewport")
	flags.String("preset", "", "start from a named preset (see the presets command)")
	flags.IntP("max-threads", "t", 0, "largest worker count of the sweep (default: number of CPUs)")
	flags.StringP("out", "o", "mandelbrot.png", "write the rendered image here; empty to skip")
	flags.String("chart", "", "write a speedup and efficiency chart (PNG) here")
	flags.BoolVar(&save, "save", false, "append the series to the benchmark store")
	storeFlags(cmd)

	return cmd
}

func storeFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", "text", "benchmark store backend: text or sqlite")
	cmd.Flags().String("store-path", store.DefaultLogPath, "benchmark store location")
}

func (a *app) runRender(cmd *cobra.Command, save bool) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	s := session.New(render.WithObserver(a.metrics))
	res, err := s.Render(cmd.Context(), cfg.Viewport, cfg.Render, cfg.MaxThreads)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Summary(res))

	if cfg.Output != "" {
		if err := writePNG(cfg.Output, res.Frame.Image); err != nil {
			return err
		}
		fmt.Fprintln(out, "Image written to", cfg.Output)
	}

	if cfg.Chart != "" {
		if err := report.WriteSeriesChart(cfg.Chart, res.Series); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintln(out, "Chart written to", cfg.Chart)
	}

	if save {
		// The series is already reported, so a failed save only warns.
		if err := persist(cmd, cfg.StoreKind, cfg.StorePath, res); err != nil {
			slog.Warn("Failed to save benchmark series", "store", cfg.StoreKind, "path", cfg.StorePath, "error", err)
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: series not saved:", err)
		} else {
			fmt.Fprintln(out, "Data saved to", cfg.StorePath)
		}
	}

	return nil
}

func persist(cmd *cobra.Command, kind, path string, res *session.Result) (err error) {
	st, err := store.Open(kind, path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, st.Close())
	}()

	rec := store.NewRecord(res.Series)
	rec.Config = res.Config
	rec.Viewport = res.Viewport
	rec.Baseline = res.Baseline

	return st.Persist(cmd.Context(), rec)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = png.Encode(f, img)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}
