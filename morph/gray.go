// SPDX-License-Identifier: MIT

package morph

import (
	"fmt"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// ErodeFlat writes into out the minimum of in over the active in-bounds
// neighbors of every pixel. in and out must not alias.
//
// Returns ErrSize if len(in) or len(out) differ from the walker's image.
// Complexity: O(N·K) for N pixels and K offsets.
func ErodeFlat[T Element](in, out []T, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	erodeFlatRange(in, out, w, 0, len(in))
	return nil
}

// DilateFlat writes into out the maximum of in over the active in-bounds
// neighbors of every pixel. w must be built from the reflected structuring
// element. in and out must not alias.
//
// Returns ErrSize if len(in) or len(out) differ from the walker's image.
// Complexity: O(N·K).
func DilateFlat[T Element](in, out []T, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	dilateFlatRange(in, out, w, 0, len(in))
	return nil
}

// ErodeNonFlat writes out[p] = min over neighbors q (slot k) of in[q]-heights[k].
// Sums are formed in float64; integer results are clamped to the type range
// and rounded half up.
//
// Returns ErrSize for mismatched buffers, ErrHeights when len(heights) is
// not w.NumNeighbors().
func ErodeNonFlat[T Element](in, out []T, w *neighborhood.Walker, heights []float64) error {
	if err := checkNonFlat(w, len(in), len(out), heights); err != nil {
		return err
	}
	erodeNonFlatRange(in, out, w, heights, 0, len(in))
	return nil
}

// DilateNonFlat writes out[p] = max over neighbors q (slot k) of in[q]+heights[k].
// w must be built from the reflected structuring element; reflection keeps
// slot order, so heights stay indexed like the unreflected offsets.
func DilateNonFlat[T Element](in, out []T, w *neighborhood.Walker, heights []float64) error {
	if err := checkNonFlat(w, len(in), len(out), heights); err != nil {
		return err
	}
	dilateNonFlatRange(in, out, w, heights, 0, len(in))
	return nil
}

func checkNonFlat(w *neighborhood.Walker, nIn, nOut int, heights []float64) error {
	if err := checkSizes(w, nIn, nOut); err != nil {
		return err
	}
	if len(heights) != w.NumNeighbors() {
		return fmt.Errorf("%w: got %d, want %d", ErrHeights, len(heights), w.NumNeighbors())
	}
	return nil
}

// The *Range kernels process pixels [lo, hi). Each call owns its Cursors,
// so disjoint ranges can run concurrently on a shared Walker.

func erodeFlatRange[T Element](in, out []T, w *neighborhood.Walker, lo, hi int) {
	for p := lo; p < hi; p++ {
		c := w.Bind(p)
		q, _, ok := c.Next()
		if !ok {
			out[p] = in[p]
			continue
		}
		v := in[q]
		for {
			q, _, ok = c.Next()
			if !ok {
				break
			}
			if in[q] < v {
				v = in[q]
			}
		}
		out[p] = v
	}
}

func dilateFlatRange[T Element](in, out []T, w *neighborhood.Walker, lo, hi int) {
	for p := lo; p < hi; p++ {
		c := w.Bind(p)
		q, _, ok := c.Next()
		if !ok {
			out[p] = in[p]
			continue
		}
		v := in[q]
		for {
			q, _, ok = c.Next()
			if !ok {
				break
			}
			if in[q] > v {
				v = in[q]
			}
		}
		out[p] = v
	}
}

func erodeNonFlatRange[T Element](in, out []T, w *neighborhood.Walker, heights []float64, lo, hi int) {
	tr := traitsOf[T]()
	for p := lo; p < hi; p++ {
		c := w.Bind(p)
		set := false
		var v float64
		for {
			q, k, ok := c.Next()
			if !ok {
				break
			}
			s := float64(in[q]) - heights[k]
			if !set || s < v {
				v, set = s, true
			}
		}
		if !set {
			out[p] = in[p]
			continue
		}
		out[p] = store[T](v, tr)
	}
}

func dilateNonFlatRange[T Element](in, out []T, w *neighborhood.Walker, heights []float64, lo, hi int) {
	tr := traitsOf[T]()
	for p := lo; p < hi; p++ {
		c := w.Bind(p)
		set := false
		var v float64
		for {
			q, k, ok := c.Next()
			if !ok {
				break
			}
			s := float64(in[q]) + heights[k]
			if !set || s > v {
				v, set = s, true
			}
		}
		if !set {
			out[p] = in[p]
			continue
		}
		out[p] = store[T](v, tr)
	}
}
