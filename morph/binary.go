// SPDX-License-Identifier: MIT

package morph

import (
	"github.com/xinyuangui2/morpho/neighborhood"
)

// ErodeLogical sets out[p] when every active in-bounds neighbor of p is set
// in in. A pixel with no such neighbor is set: out-of-image pixels count as
// set, as in package packed. Flat gray erosion keeps the input instead.
//
// Returns ErrSize for mismatched buffers.
// Complexity: O(N·K).
func ErodeLogical(in, out []bool, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	erodeLogicalRange(in, out, w, 0, len(in))
	return nil
}

// DilateLogical clears out, then for every set pixel p of in sets every
// active in-bounds neighbor of p. w must be built from the structuring
// element itself: scattering p+b is the same set as gathering over the
// reflected element.
//
// Returns ErrSize for mismatched buffers.
// Complexity: O(N·K) worst case, O(N) for an empty input.
func DilateLogical(in, out []bool, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	clear(out)
	dilateLogicalRange(in, out, w, 0, len(in))
	return nil
}

func erodeLogicalRange(in, out []bool, w *neighborhood.Walker, lo, hi int) {
	for p := lo; p < hi; p++ {
		c := w.Bind(p)
		v := true
		for {
			q, _, ok := c.Next()
			if !ok {
				break
			}
			if !in[q] {
				v = false
				break
			}
		}
		out[p] = v
	}
}

func dilateLogicalRange(in, out []bool, w *neighborhood.Walker, lo, hi int) {
	for p := lo; p < hi; p++ {
		if !in[p] {
			continue
		}
		c := w.Bind(p)
		for {
			q, _, ok := c.Next()
			if !ok {
				break
			}
			out[q] = true
		}
	}
}

// interior is the block of pixels whose every active offset lands inside the
// image. Rows [r0, r1) and columns [c0, c1); the block may be empty.
type interior struct {
	r0, r1, c0, c1 int
}

// interiorOf derives the interior block from the active offsets of w.
func interiorOf(w *neighborhood.Walker) interior {
	var lo, hi neighborhood.Offset
	for k := 0; k < w.NumNeighbors(); k++ {
		if !w.Active(k) {
			continue
		}
		o := w.Offset(k)
		lo.Row, lo.Col = min(lo.Row, o.Row), min(lo.Col, o.Col)
		hi.Row, hi.Col = max(hi.Row, o.Row), max(hi.Col, o.Col)
	}
	s := w.Shape()
	b := interior{
		r0: min(-lo.Row, s.Rows),
		r1: max(s.Rows-hi.Row, 0),
		c0: min(-lo.Col, s.Cols),
		c1: max(s.Cols-hi.Col, 0),
	}
	b.r1 = max(b.r1, b.r0)
	b.c1 = max(b.c1, b.c0)
	return b
}

// edges calls fn on every pixel range outside the interior block: the top
// and bottom bands in full, then the left and right strips of each interior row.
func (b interior) edges(s neighborhood.Shape, fn func(lo, hi int)) {
	if b.r0 > 0 {
		fn(0, b.r0*s.Cols)
	}
	if b.r1 < s.Rows {
		fn(b.r1*s.Cols, s.Len())
	}
	for r := b.r0; r < b.r1; r++ {
		base := r * s.Cols
		if b.c0 > 0 {
			fn(base, base+b.c0)
		}
		if b.c1 < s.Cols {
			fn(base+b.c1, base+s.Cols)
		}
	}
}

// ErodeLogical2D is ErodeLogical with the interior block processed through
// precomputed linear offsets and no bounds tests. Edge strips go through w.
func ErodeLogical2D(in, out []bool, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	s := w.Shape()
	b := interiorOf(w)
	d := w.ActiveLinearOffsets()

	if len(d) == 0 {
		for p := range out {
			out[p] = true
		}
		return nil
	}
	for r := b.r0; r < b.r1; r++ {
		for p := r*s.Cols + b.c0; p < r*s.Cols+b.c1; p++ {
			v := true
			for _, off := range d {
				if !in[p+off] {
					v = false
					break
				}
			}
			out[p] = v
		}
	}
	b.edges(s, func(lo, hi int) { erodeLogicalRange(in, out, w, lo, hi) })
	return nil
}

// DilateLogical2D is DilateLogical with the interior block processed through
// precomputed linear offsets. w must be built from the structuring element
// itself, as for DilateLogical.
func DilateLogical2D(in, out []bool, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	clear(out)
	s := w.Shape()
	b := interiorOf(w)
	d := w.ActiveLinearOffsets()

	for r := b.r0; r < b.r1; r++ {
		for p := r*s.Cols + b.c0; p < r*s.Cols+b.c1; p++ {
			if !in[p] {
				continue
			}
			for _, off := range d {
				out[p+off] = true
			}
		}
	}
	b.edges(s, func(lo, hi int) { dilateLogicalRange(in, out, w, lo, hi) })
	return nil
}

// checkOnes3x3 verifies that w walks the full 3×3 block with every offset active.
func checkOnes3x3(w *neighborhood.Walker) error {
	if !w.Neighborhood().IsOnes3x3() {
		return ErrNotOnes3x3
	}
	for k := 0; k < w.NumNeighbors(); k++ {
		if !w.Active(k) {
			return ErrNotOnes3x3
		}
	}
	return nil
}

// ErodeOnes3x3 is ErodeLogical specialized for the 3×3 all-ones element:
// interior pixels test their eight neighbors through fixed offsets.
//
// Returns ErrNotOnes3x3 when w was built from another element or with flags.
func ErodeOnes3x3(in, out []bool, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	if err := checkOnes3x3(w); err != nil {
		return err
	}
	s := w.Shape()
	n := s.Cols
	b := interior{r0: min(1, s.Rows), r1: max(s.Rows-1, 1), c0: min(1, s.Cols), c1: max(s.Cols-1, 1)}
	b.r1, b.c1 = max(b.r1, b.r0), max(b.c1, b.c0)

	for r := b.r0; r < b.r1; r++ {
		for p := r*n + b.c0; p < r*n+b.c1; p++ {
			out[p] = in[p] &&
				in[p-n-1] && in[p-n] && in[p-n+1] &&
				in[p-1] && in[p+1] &&
				in[p+n-1] && in[p+n] && in[p+n+1]
		}
	}
	b.edges(s, func(lo, hi int) { erodeLogicalRange(in, out, w, lo, hi) })
	return nil
}

// DilateOnes3x3 is DilateLogical specialized for the 3×3 all-ones element.
func DilateOnes3x3(in, out []bool, w *neighborhood.Walker) error {
	if err := checkSizes(w, len(in), len(out)); err != nil {
		return err
	}
	if err := checkOnes3x3(w); err != nil {
		return err
	}
	clear(out)
	s := w.Shape()
	n := s.Cols
	b := interior{r0: min(1, s.Rows), r1: max(s.Rows-1, 1), c0: min(1, s.Cols), c1: max(s.Cols-1, 1)}
	b.r1, b.c1 = max(b.r1, b.r0), max(b.c1, b.c0)

	for r := b.r0; r < b.r1; r++ {
		for p := r*n + b.c0; p < r*n+b.c1; p++ {
			if !in[p] {
				continue
			}
			out[p-n-1], out[p-n], out[p-n+1] = true, true, true
			out[p-1], out[p], out[p+1] = true, true, true
			out[p+n-1], out[p+n], out[p+n+1] = true, true, true
		}
	}
	b.edges(s, func(lo, hi int) { dilateLogicalRange(in, out, w, lo, hi) })
	return nil
}

// ErodeBinary returns the binary erosion of img by nh, picking the 3×3 fast
// path when nh is the 3×3 all-ones element.
func ErodeBinary(img []bool, shape neighborhood.Shape, nh *neighborhood.Neighborhood) ([]bool, error) {
	w, _, err := prepare(len(img), shape, nh, nil)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(img))
	if nh.IsOnes3x3() {
		return out, ErodeOnes3x3(img, out, w)
	}
	return out, ErodeLogical2D(img, out, w)
}

// DilateBinary returns the binary dilation of img by nh, picking the 3×3
// fast path when nh is the 3×3 all-ones element.
func DilateBinary(img []bool, shape neighborhood.Shape, nh *neighborhood.Neighborhood) ([]bool, error) {
	w, _, err := prepare(len(img), shape, nh, nil)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(img))
	if nh.IsOnes3x3() {
		return out, DilateOnes3x3(img, out, w)
	}
	return out, DilateLogical2D(img, out, w)
}
