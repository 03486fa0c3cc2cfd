package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willbeason/mandelbench/pkg/fractal"
	"github.com/willbeason/mandelbench/pkg/report"
)

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named render presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), report.PresetsTable(fractal.Presets()))
			return nil
		},
	}
}
