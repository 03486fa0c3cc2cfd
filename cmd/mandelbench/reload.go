package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbench/pkg/report"
	"github.com/willbeason/mandelbench/pkg/store"
)

func reloadCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reload",
		Short: "Show every saved benchmark series side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return a.runReload(cmd)
		},
	}

	cmd.Flags().String("chart", "", "write a comparison chart (PNG) of all saved runs here")
	storeFlags(cmd)

	return cmd
}

func (a *app) runReload(cmd *cobra.Command) (err error) {
	st, err := store.Open(a.cfg.StoreKind, a.cfg.StorePath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, st.Close())
	}()

	records, err := st.ReloadAll(cmd.Context())
	switch {
	case errors.Is(err, store.ErrUnpairedLine):
		slog.Warn("Ignoring trailing line of benchmark log", "path", a.cfg.StorePath, "error", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", err)
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No saved runs in", a.cfg.StorePath)
		return nil
	}

	fmt.Fprintf(out, "Speedup (%d runs)\n", len(records))
	fmt.Fprintln(out, report.RecordsTable(records, report.Speedups))
	fmt.Fprintf(out, "Efficiency (%d runs)\n", len(records))
	fmt.Fprintln(out, report.RecordsTable(records, report.Efficiencies))

	if a.cfg.Chart != "" {
		if err := report.WriteComparisonChart(a.cfg.Chart, records); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintln(out, "Chart written to", a.cfg.Chart)
	}

	return nil
}
