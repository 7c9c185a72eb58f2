// SPDX-License-Identifier: MIT

package neighborhood

import (
	"fmt"
)

// Neighborhood is an ordered, immutable list of relative offsets.
// The zero value is an empty neighborhood.
type Neighborhood struct {
	offsets []Offset
}

// New builds a Neighborhood from explicit offsets, in the given order.
// The slice is copied.
func New(offsets ...Offset) *Neighborhood {
	cp := make([]Offset, len(offsets))
	copy(cp, offsets)
	return &Neighborhood{offsets: cp}
}

// FromConnectivity builds the 4- or 8-connected 3×3 neighborhood,
// center included, in raster order.
//
// Conn4 keeps offsets with at most one non-zero coordinate (edge neighbors),
// Conn8 keeps the whole 3×3 block (edge or vertex neighbors).
// Returns ErrConnectivity for any other value.
// Complexity: O(1).
func FromConnectivity(c Connectivity) (*Neighborhood, error) {
	var maxNonZero int
	switch c {
	case Conn4:
		maxNonZero = 1
	case Conn8:
		maxNonZero = 2
	default:
		return nil, fmt.Errorf("%w: got %d", ErrConnectivity, int(c))
	}

	offsets := make([]Offset, 0, int(c)+1)
	for row := -1; row <= 1; row++ {
		for col := -1; col <= 1; col++ {
			nonZero := 0
			if row != 0 {
				nonZero++
			}
			if col != 0 {
				nonZero++
			}
			if nonZero <= maxNonZero {
				offsets = append(offsets, Offset{Row: row, Col: col})
			}
		}
	}
	return &Neighborhood{offsets: offsets}, nil
}

// Default returns the 3×3 all-ones neighborhood centered on (0,0).
func Default() *Neighborhood {
	nh, _ := FromConnectivity(Conn8)
	return nh
}

// FromMask builds a Neighborhood from a row-major rows×cols mask.
// Every entry different from the zero value of T becomes one offset; entries
// are visited in row-major order and translated by the Origin policy.
//
// Stage 1 (Validate): mask shape and origin.
// Stage 2 (Count): allocate exactly one slot per non-zero entry.
// Stage 3 (Fill): convert positions to offsets relative to the origin.
//
// Returns ErrMaskShape or ErrOrigin on invalid input.
// Complexity: O(rows*cols).
func FromMask[T comparable](mask []T, rows, cols int, origin Origin) (*Neighborhood, error) {
	if rows <= 0 || cols <= 0 || len(mask) != rows*cols {
		return nil, fmt.Errorf("%w: len=%d, shape=%dx%d", ErrMaskShape, len(mask), rows, cols)
	}
	rowShift, err := origin.shift(rows)
	if err != nil {
		return nil, err
	}
	colShift, _ := origin.shift(cols)

	var zero T
	count := 0
	for _, v := range mask {
		if v != zero {
			count++
		}
	}

	offsets := make([]Offset, 0, count)
	for i, v := range mask {
		if v == zero {
			continue
		}
		offsets = append(offsets, Offset{
			Row: i/cols - rowShift,
			Col: i%cols - colShift,
		})
	}
	return &Neighborhood{offsets: offsets}, nil
}

// FromBoolMask is FromMask for a rectangular [][]bool.
// Returns ErrMaskShape for an empty or ragged mask.
func FromBoolMask(mask [][]bool, origin Origin) (*Neighborhood, error) {
	if len(mask) == 0 || len(mask[0]) == 0 {
		return nil, fmt.Errorf("%w: empty mask", ErrMaskShape)
	}
	rows, cols := len(mask), len(mask[0])
	flat := make([]bool, 0, rows*cols)
	for _, row := range mask {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: ragged mask", ErrMaskShape)
		}
		flat = append(flat, row...)
	}
	return FromMask(flat, rows, cols, origin)
}

// Ones returns a full rows×cols rectangle positioned by origin.
func Ones(rows, cols int, origin Origin) (*Neighborhood, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: shape=%dx%d", ErrMaskShape, rows, cols)
	}
	mask := make([]bool, rows*cols)
	for i := range mask {
		mask[i] = true
	}
	return FromMask(mask, rows, cols, origin)
}

// Len returns the number of offsets.
func (nh *Neighborhood) Len() int {
	if nh == nil {
		return 0
	}
	return len(nh.offsets)
}

// At returns the k-th offset.
func (nh *Neighborhood) At(k int) Offset {
	return nh.offsets[k]
}

// Offsets returns a copy of the offsets.
func (nh *Neighborhood) Offsets() []Offset {
	if nh == nil {
		return nil
	}
	cp := make([]Offset, len(nh.offsets))
	copy(cp, nh.offsets)
	return cp
}

// Reflect returns a new Neighborhood with every offset negated.
// Dilation by a structuring element is erosion's dual only after reflection.
func (nh *Neighborhood) Reflect() *Neighborhood {
	out := make([]Offset, nh.Len())
	for k := range out {
		out[k] = nh.offsets[k].Neg()
	}
	return &Neighborhood{offsets: out}
}

// Bounds returns the component-wise minimum and maximum offsets.
// Both always include zero, so the interior of an image is well defined
// even for neighborhoods that do not contain the center.
func (nh *Neighborhood) Bounds() (lo, hi Offset) {
	if nh == nil {
		return lo, hi
	}
	for _, o := range nh.offsets {
		lo.Row = min(lo.Row, o.Row)
		lo.Col = min(lo.Col, o.Col)
		hi.Row = max(hi.Row, o.Row)
		hi.Col = max(hi.Col, o.Col)
	}
	return lo, hi
}

// IsOnes3x3 reports whether the neighborhood is exactly the 3×3 block
// centered on the origin, in any order.
func (nh *Neighborhood) IsOnes3x3() bool {
	if nh.Len() != 9 {
		return false
	}
	var seen [3][3]bool
	for _, o := range nh.offsets {
		if o.Row < -1 || o.Row > 1 || o.Col < -1 || o.Col > 1 {
			return false
		}
		if seen[o.Row+1][o.Col+1] {
			return false
		}
		seen[o.Row+1][o.Col+1] = true
	}
	return true
}

// Rect reports whether the neighborhood covers a full rectangle with no
// duplicate offsets. It returns the upper-left offset and the size.
func (nh *Neighborhood) Rect() (lo Offset, height, width int, ok bool) {
	if nh.Len() == 0 {
		return lo, 0, 0, false
	}
	lo = nh.offsets[0]
	hi := nh.offsets[0]
	for _, o := range nh.offsets[1:] {
		lo.Row, lo.Col = min(lo.Row, o.Row), min(lo.Col, o.Col)
		hi.Row, hi.Col = max(hi.Row, o.Row), max(hi.Col, o.Col)
	}
	height, width = hi.Row-lo.Row+1, hi.Col-lo.Col+1
	if height*width != len(nh.offsets) {
		return lo, 0, 0, false
	}
	seen := make([]bool, height*width)
	for _, o := range nh.offsets {
		i := (o.Row-lo.Row)*width + (o.Col - lo.Col)
		if seen[i] {
			return lo, 0, 0, false
		}
		seen[i] = true
	}
	return lo, height, width, true
}

// String implements fmt.Stringer for debugging.
func (nh *Neighborhood) String() string {
	return fmt.Sprintf("Neighborhood%v", nh.Offsets())
}
