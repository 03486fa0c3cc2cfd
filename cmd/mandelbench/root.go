package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willbeason/mandelbench/internal/config"
	"github.com/willbeason/mandelbench/internal/telemetry"
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"width":         "width",
	"height":        "height",
	"iterations":    "max_iterations",
	"power":         "power",
	"min-real":      "viewport.min_real",
	"max-real":      "viewport.max_real",
	"min-imaginary": "viewport.min_imaginary",
	"max-imaginary": "viewport.max_imaginary",
	"preset":        "preset",
	"max-threads":   "max_threads",
	"out":           "output",
	"chart":         "chart",
	"store":         "store.kind",
	"store-path":    "store.path",
	"verbose":       "verbose",
	"log-file":      "log_file",
	"metrics-addr":  "metrics_addr",
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	cfg     config.Config

	metrics *telemetry.SweepMetrics
	server  *http.Server
	logs    io.Closer
}

func mainCmd() *cobra.Command {
	a := &app{metrics: telemetry.NewSweepMetrics()}

	cmd := &cobra.Command{
		Use:   "mandelbench",
		Short: "Render the Mandelbrot set and benchmark parallel speedup",
		Long: `mandelbench renders the Mandelbrot set (or z^n + c for higher powers) once
with a single worker, then again with 1 to N workers, and reports the speedup
and efficiency of every step.`,
		Args:               cobra.NoArgs,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./mandelbench.yaml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("log-file", "", "also write logs to this file")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")

	cmd.AddCommand(renderCmd(a), reloadCmd(a), presetsCmd())

	return cmd
}

// bindFlags binds the flags of the command being run. Commands share flag
// names, so binding happens per invocation rather than at construction.
func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	if err := config.Load(a.cfgFile); err != nil {
		return err
	}
	a.cfg = config.Current()

	a.logs = telemetry.InitLogger(a.cfg.Verbose, a.cfg.LogFile)

	if a.cfg.MetricsAddr != "" {
		a.server = telemetry.StartMetricsServer(a.cfg.MetricsAddr, a.metrics)
	}

	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			slog.Warn("metrics server shutdown", "error", err)
		}
	}

	if a.logs == nil {
		return nil
	}
	// Later records still reach stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	return a.logs.Close()
}
