// SPDX-License-Identifier: MIT

// Command tophat removes the background of a single-band raster with a
// top-hat by reconstruction and optionally labels the remaining objects.
//
// Usage:
//
//	tophat extract --in dsm.f32.zst --out objects.f32.zst --se-rows 15 --se-cols 15
//	tophat extract --in dsm.f32.zst --out res.f32.zst --element octagon --radius 6 --threshold 2.5
//	tophat extract --in scan.tif --out res.f32.zst
//
// Float rasters such as DSMs use the .f32.zst format. TIFF input holds
// integer samples; TIFF output is accepted only when every result sample
// is an integer in [0, 65535].
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tophat",
		Short:        "Top-hat by reconstruction for single-band rasters",
		SilenceUsage: true,
	}
	root.AddCommand(newExtractCmd())
	return root
}
