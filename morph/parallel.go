// SPDX-License-Identifier: MIT

package morph

import (
	"golang.org/x/sync/errgroup"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// rangeKernel processes pixels [lo, hi) of one image.
type rangeKernel func(lo, hi int)

// runBlocks splits the image rows into at most workers contiguous blocks and
// runs fn on each. With one worker, or a single row, fn runs inline.
func runBlocks(shape neighborhood.Shape, workers int, fn rangeKernel) error {
	if workers <= 1 || shape.Rows < 2 {
		fn(0, shape.Len())
		return nil
	}
	if workers > shape.Rows {
		workers = shape.Rows
	}
	chunk := (shape.Rows + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for r := 0; r < shape.Rows; r += chunk {
		lo := r * shape.Cols
		hi := min(r+chunk, shape.Rows) * shape.Cols
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	return g.Wait()
}
