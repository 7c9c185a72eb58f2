// SPDX-License-Identifier: MIT

package tophat

import (
	"fmt"
	"time"

	"github.com/xinyuangui2/morpho/linear"
	"github.com/xinyuangui2/morpho/morph"
	"github.com/xinyuangui2/morpho/neighborhood"
	"github.com/xinyuangui2/morpho/reconstruct"
	"github.com/xinyuangui2/morpho/regions"
)

// smallRect is the largest rectangle area eroded through the walker; larger
// rectangles use the van Herk passes.
const smallRect = 9

// TopHat returns image - reconstruct(erode(image, mask), image) for a
// rows×cols image. mask is a maskRows×maskCols 0/1 pattern whose origin is
// its middle pixel, rounded down; nil selects the 3×3 block.
//
// Returns ErrSize, ErrMask, or the wrapped error of a later stage.
func TopHat(image []float32, rows, cols int, mask []int, maskRows, maskCols int) ([]float32, error) {
	var opts []Option
	if mask != nil {
		nh, err := neighborhood.FromMask(mask, maskRows, maskCols, neighborhood.OriginMiddleRoundDown)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMask, err)
		}
		if nh.Len() == 0 {
			return nil, fmt.Errorf("%w: mask has no set pixel", ErrMask)
		}
		opts = append(opts, WithElement(nh))
	}
	return Extract(image, neighborhood.Shape{Rows: rows, Cols: cols}, opts...)
}

// Extract runs the top-hat by reconstruction pipeline on image.
//
// Stage 1 (Validate): options, shape, image length, origin in the element.
// Stage 2 (Erode): van Herk passes for rectangles and octagons, walker
// erosion otherwise.
// Stage 3 (Reconstruct): the eroded image under the original one.
// Stage 4 (Subtract): image minus reconstruction.
func Extract(image []float32, shape neighborhood.Shape, opts ...Option) ([]float32, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(image) != shape.Len() {
		return nil, fmt.Errorf("%w: got %d, want %dx%d", ErrSize, len(image), shape.Rows, shape.Cols)
	}
	if !hasOrigin(o.Element) {
		return nil, fmt.Errorf("%w: element %v does not contain its origin", ErrMask, o.Element)
	}

	log := o.Logger.With().Str("component", "tophat").Logger()
	start := time.Now()

	eroded, method, err := erode(image, shape, o)
	if err != nil {
		return nil, fmt.Errorf("tophat: erode: %w", err)
	}
	log.Debug().
		Str("method", method).
		Int("element_size", o.Element.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("eroded")

	t := time.Now()
	var st reconstruct.Stats
	rec, err := reconstruct.Reconstruct(eroded, image, shape,
		reconstruct.WithConnectivity(o.Connectivity),
		reconstruct.WithContext(o.Ctx),
		reconstruct.WithStats(&st),
	)
	if err != nil {
		return nil, fmt.Errorf("tophat: reconstruct: %w", err)
	}
	log.Debug().
		Int("queued", st.Queued).
		Int("raised", st.Raised).
		Dur("elapsed", time.Since(t)).
		Msg("reconstructed")

	for i := range rec {
		rec[i] = image[i] - rec[i]
	}
	log.Info().
		Int("rows", shape.Rows).
		Int("cols", shape.Cols).
		Dur("elapsed", time.Since(start)).
		Msg("top-hat extracted")
	return rec, nil
}

// erode picks the erosion method for the configured element.
func erode(image []float32, shape neighborhood.Shape, o Options) ([]float32, string, error) {
	if o.Octagon > 0 {
		out, err := linear.ErodeOctagon(image, shape, o.Octagon)
		return out, "van-herk-octagon", err
	}
	if lo, h, w, ok := o.Element.Rect(); ok && h*w > smallRect {
		out, err := linear.ErodeRect(image, shape, h, w, neighborhood.Offset{Row: -lo.Row, Col: -lo.Col})
		return out, "van-herk", err
	}
	out, err := morph.Erode(image, shape, o.Element, morph.WithWorkers(o.Workers))
	return out, "walker", err
}

func hasOrigin(nh *neighborhood.Neighborhood) bool {
	for _, off := range nh.Offsets() {
		if off == (neighborhood.Offset{}) {
			return true
		}
	}
	return false
}

// Objects labels the pixels of result above threshold and measures each
// region against result.
func Objects(result []float32, shape neighborhood.Shape, threshold float32, conn neighborhood.Connectivity) ([]int, []regions.Region, error) {
	labels, n, err := regions.Label(regions.Threshold(result, threshold), shape, conn)
	if err != nil {
		return nil, nil, err
	}
	objs, err := regions.Describe(labels, n, shape, result)
	if err != nil {
		return nil, nil, err
	}
	return labels, objs, nil
}
