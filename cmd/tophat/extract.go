// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/xinyuangui2/morpho/neighborhood"
	"github.com/xinyuangui2/morpho/raster"
	"github.com/xinyuangui2/morpho/tophat"
)

var errFlag = errors.New("invalid flag")

type extractFlags struct {
	in, out      string
	element      string
	seRows       int
	seCols       int
	radius       int
	connectivity int
	workers      int
	threshold    float32
	logLevel     string
	logFormat    string
}

func newExtractCmd() *cobra.Command {
	var f extractFlags
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write image - reconstruct(erode(image), image)",
		Long: `Reads a raster (.f32.zst, or .tif/.tiff with integer samples), erodes
it with the chosen structuring element, reconstructs the eroded image under
the original and writes the difference. Float results need a .f32.zst output. With --threshold the pixels above it are labeled and
each object is logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cmd.ErrOrStderr(), f.logLevel, f.logFormat)
			if err != nil {
				return fmt.Errorf("%w: %w", errFlag, err)
			}
			if err := runExtract(cmd, f, log); err != nil {
				log.Error().Err(err).Str("component", "cli").Msg("extract failed")
				return err
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.in, "in", "", "input raster")
	fl.StringVar(&f.out, "out", "", "output raster")
	fl.StringVar(&f.element, "element", "rect", "structuring element: rect or octagon")
	fl.IntVar(&f.seRows, "se-rows", 3, "rectangle height")
	fl.IntVar(&f.seCols, "se-cols", 3, "rectangle width")
	fl.IntVar(&f.radius, "radius", 3, "octagon radius")
	fl.IntVar(&f.connectivity, "connectivity", 8, "reconstruction connectivity: 4 or 8")
	fl.IntVar(&f.workers, "workers", 1, "erosion workers, 0 for GOMAXPROCS")
	fl.Float32Var(&f.threshold, "threshold", 0, "label objects above this value (0 disables)")
	fl.StringVar(&f.logLevel, "log-level", "info", "log level")
	fl.StringVar(&f.logFormat, "log-format", "console", "log format: json or console")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runExtract(cmd *cobra.Command, f extractFlags, log zerolog.Logger) error {
	start := time.Now()
	seOpt, err := element(f)
	if err != nil {
		return err
	}
	if raster.FormatOf(f.out) == raster.FormatUnknown {
		return fmt.Errorf("%w: --out %q: %w", errFlag, f.out, raster.ErrFormat)
	}

	img, err := raster.Open(f.in)
	if err != nil {
		return err
	}
	log.Info().
		Str("component", "cli").
		Str("in", f.in).
		Int("rows", img.Rows).
		Int("cols", img.Cols).
		Msg("raster loaded")

	shape := img.Shape()
	res, err := tophat.Extract(img.Data, shape,
		seOpt,
		tophat.WithConnectivity(neighborhood.Connectivity(f.connectivity)),
		tophat.WithWorkers(f.workers),
		tophat.WithContext(cmd.Context()),
		tophat.WithLogger(log),
	)
	if err != nil {
		return err
	}

	if f.threshold > 0 {
		_, objs, err := tophat.Objects(res, shape, f.threshold, neighborhood.Connectivity(f.connectivity))
		if err != nil {
			return err
		}
		for _, o := range objs {
			log.Debug().
				Str("component", "cli").
				Int("label", o.Label).
				Int("area", o.Area).
				Int("top", o.Top).
				Int("left", o.Left).
				Int("height", o.Height()).
				Int("width", o.Width()).
				Float64("peak", o.Peak).
				Msg("object")
		}
		log.Info().
			Str("component", "cli").
			Float32("threshold", f.threshold).
			Int("objects", len(objs)).
			Msg("objects labeled")
	}

	if err := raster.Write(f.out, &raster.Raster{Rows: img.Rows, Cols: img.Cols, Data: res}); err != nil {
		return err
	}
	log.Info().
		Str("component", "cli").
		Str("out", f.out).
		Dur("elapsed", time.Since(start)).
		Msg("result written")
	return nil
}

// element turns the structuring element flags into a tophat option.
func element(f extractFlags) (tophat.Option, error) {
	switch f.element {
	case "rect":
		nh, err := neighborhood.Ones(f.seRows, f.seCols, neighborhood.OriginMiddleRoundDown)
		if err != nil {
			return nil, fmt.Errorf("%w: --se-rows/--se-cols: %w", errFlag, err)
		}
		return tophat.WithElement(nh), nil
	case "octagon":
		if f.radius < 0 {
			return nil, fmt.Errorf("%w: --radius %d", errFlag, f.radius)
		}
		return tophat.WithOctagon(f.radius), nil
	default:
		return nil, fmt.Errorf("%w: --element %q: want rect or octagon", errFlag, f.element)
	}
}
