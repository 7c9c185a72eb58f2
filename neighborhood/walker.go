// SPDX-License-Identifier: MIT

package neighborhood

import (
	"fmt"
	"iter"
)

// order classifies an offset relative to a raster scan of the image.
type order int8

const (
	trailing order = -1 // reached before the center
	center   order = 0
	leading  order = 1 // reached after the center
)

// Walker binds a Neighborhood to one image Shape and one Flags value.
// It is immutable after NewWalker and safe to share between goroutines;
// traversal state lives in the Cursor values returned by Bind.
type Walker struct {
	offsets []Offset // copy of the neighborhood offsets
	linear  []int    // per-offset linear displacement in this image
	class   []order  // leading/trailing/center, image-size independent
	active  []bool   // false for offsets removed by flags
	shape   Shape
	strides [2]int // cumulative products, fastest dimension first
	flags   Flags
}

// NewWalker prepares a Walker for every pixel of an image of the given shape.
//
// Stage 1 (Validate): shape must be positive.
// Stage 2 (Prepare): copy offsets, build the stride table, precompute the
// linear displacement of every offset.
// Stage 3 (Classify): mark offsets leading/trailing/center and deactivate
// the ones selected by flags.
//
// Returns ErrShape for a non-positive shape.
// Complexity: O(K) for K offsets.
func NewWalker(nh *Neighborhood, shape Shape, flags Flags) (*Walker, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	n := nh.Len()
	w := &Walker{
		offsets: nh.Offsets(),
		linear:  make([]int, n),
		class:   make([]order, n),
		active:  make([]bool, n),
		shape:   shape,
		strides: [2]int{1, shape.Cols},
		flags:   flags,
	}

	for k, o := range w.offsets {
		w.linear[k] = o.Row*w.strides[1] + o.Col*w.strides[0]
		w.class[k] = classify(o)
		w.active[k] = !skipped(w.class[k], flags)
	}
	return w, nil
}

// MustWalker is NewWalker for callers that already validated shape.
// It panics on error.
func MustWalker(nh *Neighborhood, shape Shape, flags Flags) *Walker {
	w, err := NewWalker(nh, shape, flags)
	if err != nil {
		panic(err)
	}
	return w
}

// classify maps o into the linear index space of an imaginary P×P square,
// P = 2N+1 with N the largest absolute coordinate of o. Inside that square
// the sign of the linear offset is valid whatever the real image size is.
func classify(o Offset) order {
	n := max(abs(o.Row), abs(o.Col))
	p := 2*n + 1
	switch idx := o.Row*p + o.Col; {
	case idx > 0:
		return leading
	case idx < 0:
		return trailing
	default:
		return center
	}
}

// skipped reports whether flags remove an offset of class c.
func skipped(c order, flags Flags) bool {
	switch c {
	case leading:
		return flags&SkipLeading != 0
	case trailing:
		return flags&SkipTrailing != 0
	default:
		return flags&SkipCenter != 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Shape returns the image shape the walker was built for.
func (w *Walker) Shape() Shape { return w.shape }

// Flags returns the flags the walker was built with.
func (w *Walker) Flags() Flags { return w.flags }

// NumNeighbors returns the number of offsets, active or not.
func (w *Walker) NumNeighbors() int { return len(w.offsets) }

// Neighborhood returns a copy of the offsets the walker was built from.
func (w *Walker) Neighborhood() *Neighborhood { return New(w.offsets...) }

// Offset returns the k-th offset.
func (w *Walker) Offset(k int) Offset { return w.offsets[k] }

// Active reports whether the k-th offset survives the walker flags.
func (w *Walker) Active(k int) bool { return w.active[k] }

// IsLeading reports whether the k-th offset is reached after the center
// in a raster scan.
func (w *Walker) IsLeading(k int) bool { return w.class[k] == leading }

// IsTrailing reports whether the k-th offset is reached before the center
// in a raster scan.
func (w *Walker) IsTrailing(k int) bool { return w.class[k] == trailing }

// IsCenter reports whether the k-th offset is (0,0).
func (w *Walker) IsCenter(k int) bool { return w.class[k] == center }

// LinearOffsets returns a copy of the per-offset linear displacements.
// Adding one to a pixel index is only valid when the neighbor is known to
// be inside the image.
func (w *Walker) LinearOffsets() []int {
	cp := make([]int, len(w.linear))
	copy(cp, w.linear)
	return cp
}

// ActiveLinearOffsets returns the linear displacements of active offsets.
func (w *Walker) ActiveLinearOffsets() []int {
	out := make([]int, 0, len(w.linear))
	for k, d := range w.linear {
		if w.active[k] {
			out = append(out, d)
		}
	}
	return out
}

// Bind positions a new Cursor on pixel p. Binding is O(1): p is converted to
// coordinates with the stride table and the neighbor scan starts at slot 0.
// An index outside the image yields an exhausted Cursor; use BindChecked to
// get an error instead.
func (w *Walker) Bind(p int) Cursor {
	if p < 0 || p >= w.shape.Len() {
		return Cursor{}
	}
	return Cursor{
		w:      w,
		center: p,
		row:    p / w.strides[1],
		col:    p % w.strides[1],
	}
}

// BindChecked is Bind returning ErrPixelIndex for an out-of-range p.
func (w *Walker) BindChecked(p int) (Cursor, error) {
	if p < 0 || p >= w.shape.Len() {
		return Cursor{}, fmt.Errorf("%w: %d not in [0,%d)", ErrPixelIndex, p, w.shape.Len())
	}
	return w.Bind(p), nil
}

// Neighbors returns an iterator over the active in-bounds neighbors of p,
// yielding (linear index, neighbor slot) pairs in offset order.
func (w *Walker) Neighbors(p int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		c := w.Bind(p)
		for {
			q, slot, ok := c.Next()
			if !ok || !yield(q, slot) {
				return
			}
		}
	}
}

// Cursor walks the neighbors of one center pixel. The zero value is
// exhausted. A Cursor must not be shared between goroutines.
type Cursor struct {
	w        *Walker
	center   int
	row, col int
	next     int
}

// Center returns the linear index the cursor was bound to.
func (c *Cursor) Center() int { return c.center }

// Next returns the next active neighbor that lies inside the image, as its
// linear index q and its slot in the neighborhood. ok is false once every
// offset has been visited; from then on the cursor stays exhausted.
func (c *Cursor) Next() (q, slot int, ok bool) {
	w := c.w
	if w == nil {
		return 0, 0, false
	}
	for k := c.next; k < len(w.offsets); k++ {
		if !w.active[k] {
			continue
		}
		o := w.offsets[k]
		r, col := c.row+o.Row, c.col+o.Col
		if r < 0 || r >= w.shape.Rows || col < 0 || col >= w.shape.Cols {
			continue
		}
		c.next = k + 1
		return c.center + w.linear[k], k, true
	}
	c.w = nil
	return 0, 0, false
}
