// SPDX-License-Identifier: MIT

package reconstruct

import (
	"context"
	"fmt"

	"github.com/xinyuangui2/morpho/morph"
	"github.com/xinyuangui2/morpho/neighborhood"
)

// cancelEvery is the number of queue pops between context checks.
const cancelEvery = 4096

// Walkers holds the three views of one neighborhood that reconstruction
// needs. It is immutable and can be reused for any number of images of
// the same shape, concurrently.
type Walkers struct {
	causal     *neighborhood.Walker // SkipCenter|SkipLeading
	antiCausal *neighborhood.Walker // SkipCenter|SkipTrailing
	full       *neighborhood.Walker // SkipCenter
}

// NewWalkers builds the causal, anti-causal and full walkers of nh for shape.
func NewWalkers(nh *neighborhood.Neighborhood, shape neighborhood.Shape) (*Walkers, error) {
	causal, err := neighborhood.NewWalker(nh, shape, neighborhood.SkipCenter|neighborhood.SkipLeading)
	if err != nil {
		return nil, err
	}
	return &Walkers{
		causal:     causal,
		antiCausal: neighborhood.MustWalker(nh, shape, neighborhood.SkipCenter|neighborhood.SkipTrailing),
		full:       neighborhood.MustWalker(nh, shape, neighborhood.SkipCenter),
	}, nil
}

// Shape returns the image shape the walkers were built for.
func (ws *Walkers) Shape() neighborhood.Shape { return ws.full.Shape() }

// Reconstruct returns the reconstruction of marker under mask. Neither input
// is modified.
//
// Stage 1 (Validate): options, shape, buffer lengths.
// Stage 2 (Prepare): copy marker, build walkers.
// Stage 3 (Execute): raster, antiraster and propagation passes on the copy.
func Reconstruct[T morph.Element](marker, mask []T, shape neighborhood.Shape, opts ...Option) ([]T, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	ws, err := NewWalkers(o.Neighborhood, shape)
	if err != nil {
		return nil, err
	}
	if err := checkSizes(ws, len(marker), len(mask)); err != nil {
		return nil, err
	}
	j := make([]T, len(marker))
	copy(j, marker)
	if err := run(o.Ctx, j, mask, ws, o.Stats); err != nil {
		return nil, err
	}
	return j, nil
}

// ReconstructInPlace overwrites j with the reconstruction of j under mask.
// The neighborhood options are ignored: adjacency comes from ws. On
// ErrMarkerAboveMask j is left untouched; on cancellation it holds a partial
// result that is still between the marker and the reconstruction.
func ReconstructInPlace[T morph.Element](j, mask []T, ws *Walkers, opts ...Option) error {
	o, err := gatherOptions(opts)
	if err != nil {
		return err
	}
	if err := checkSizes(ws, len(j), len(mask)); err != nil {
		return err
	}
	return run(o.Ctx, j, mask, ws, o.Stats)
}

func checkSizes(ws *Walkers, nJ, nI int) error {
	n := ws.Shape().Len()
	if nJ != n || nI != n {
		return fmt.Errorf("%w: marker %d, mask %d, want %d", ErrSize, nJ, nI, n)
	}
	return nil
}

// run is the fast-hybrid algorithm on validated buffers.
func run[T morph.Element](ctx context.Context, j, mask []T, ws *Walkers, st *Stats) error {
	for p := range j {
		if j[p] > mask[p] {
			return fmt.Errorf("%w: pixel %d", ErrMarkerAboveMask, p)
		}
	}
	if st == nil {
		st = &Stats{}
	}

	sweep(j, mask, ws.causal)
	queue := make([]int, 0, len(j)/8+1)
	queue = sweepBack(j, mask, ws.antiCausal, queue)
	st.Queued += len(queue)

	pops := 0
	for len(queue) > 0 {
		pops++
		if pops%cancelEvery == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		p := queue[0]
		queue = queue[1:]
		jp := j[p]
		c := ws.full.Bind(p)
		for {
			q, _, ok := c.Next()
			if !ok {
				break
			}
			if j[q] < jp && mask[q] != j[q] {
				j[q] = min(jp, mask[q])
				queue = append(queue, q)
				st.Queued++
				st.Raised++
			}
		}
	}
	return nil
}

// sweep is the raster pass: J[p] = min(max(J[p], max J[q]), I[p]) in
// increasing p, q over the active neighbors of w.
func sweep[T morph.Element](j, mask []T, w *neighborhood.Walker) {
	for p := range j {
		j[p] = raise(j, mask, w, p)
	}
}

func raise[T morph.Element](j, mask []T, w *neighborhood.Walker, p int) T {
	v := j[p]
	c := w.Bind(p)
	for {
		q, _, ok := c.Next()
		if !ok {
			break
		}
		if j[q] > v {
			v = j[q]
		}
	}
	return min(v, mask[p])
}

// sweepBack is the antiraster sweep; it appends to queue every pixel that
// can still raise one of its anti-causal neighbors.
func sweepBack[T morph.Element](j, mask []T, w *neighborhood.Walker, queue []int) []int {
	for p := len(j) - 1; p >= 0; p-- {
		j[p] = raise(j, mask, w, p)
		c := w.Bind(p)
		for {
			q, _, ok := c.Next()
			if !ok {
				break
			}
			if j[q] < j[p] && j[q] < mask[q] {
				queue = append(queue, p)
				break
			}
		}
	}
	return queue
}
