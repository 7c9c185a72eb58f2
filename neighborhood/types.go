// SPDX-License-Identifier: MIT

package neighborhood

import (
	"errors"
	"fmt"
)

// Sentinel errors for neighborhood construction and traversal.
var (
	// ErrConnectivity indicates a connectivity value other than 4 or 8.
	ErrConnectivity = errors.New("neighborhood: connectivity must be 4 or 8")

	// ErrOrigin indicates an Origin value outside the supported policies.
	ErrOrigin = errors.New("neighborhood: unknown origin policy")

	// ErrMaskShape indicates a mask whose length does not match rows*cols.
	ErrMaskShape = errors.New("neighborhood: mask length does not match its shape")

	// ErrShape indicates an image shape with non-positive rows or cols.
	ErrShape = errors.New("neighborhood: image shape must have positive rows and cols")

	// ErrPixelIndex indicates a linear pixel index outside the bound image.
	ErrPixelIndex = errors.New("neighborhood: pixel index out of range")
)

// Connectivity selects one of the symbolic 2-D neighborhoods.
// The numeric value is the number of neighbors excluding the center.
type Connectivity int

const (
	// Conn4 keeps neighbors that share an edge with the center.
	Conn4 Connectivity = 4
	// Conn8 keeps neighbors that share an edge or a vertex with the center.
	Conn8 Connectivity = 8
)

// Origin selects which mask pixel becomes the (0,0) offset.
type Origin int

const (
	// OriginMiddleRoundDown centers the mask, rounding even sizes down.
	OriginMiddleRoundDown Origin = iota
	// OriginMiddleRoundUp centers the mask, rounding even sizes up.
	OriginMiddleRoundUp
	// OriginUpperLeft places the origin on the first mask pixel.
	OriginUpperLeft
	// OriginLowerRight places the origin on the last mask pixel.
	OriginLowerRight
)

// String implements fmt.Stringer.
func (o Origin) String() string {
	switch o {
	case OriginMiddleRoundDown:
		return "middle-round-down"
	case OriginMiddleRoundUp:
		return "middle-round-up"
	case OriginUpperLeft:
		return "upper-left"
	case OriginLowerRight:
		return "lower-right"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// shift returns how far mask coordinates along a dimension of size n move
// so that the origin lands on zero.
func (o Origin) shift(n int) (int, error) {
	switch o {
	case OriginMiddleRoundDown:
		return (n - 1) / 2, nil
	case OriginMiddleRoundUp:
		return (n-1)/2 + (n-1)%2, nil
	case OriginUpperLeft:
		return 0, nil
	case OriginLowerRight:
		return n - 1, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrOrigin, o)
	}
}

// Flags filter which offsets a Walker visits. Values can be OR'd together.
type Flags uint8

const (
	// UseAll visits every offset.
	UseAll Flags = 0
	// SkipTrailing drops offsets reached before the center in a raster scan.
	SkipTrailing Flags = 1 << 0
	// SkipLeading drops offsets reached after the center in a raster scan.
	SkipLeading Flags = 1 << 1
	// SkipCenter drops the (0,0) offset.
	SkipCenter Flags = 1 << 2
)

// Offset is a relative (row, col) displacement from a center pixel.
type Offset struct {
	Row, Col int
}

// Neg returns the reflected offset.
func (o Offset) Neg() Offset {
	return Offset{Row: -o.Row, Col: -o.Col}
}

// Shape is the size of a row-major 2-D image.
type Shape struct {
	Rows, Cols int
}

// Validate returns ErrShape unless both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrShape, s.Rows, s.Cols)
	}
	return nil
}

// Len returns Rows*Cols.
func (s Shape) Len() int {
	return s.Rows * s.Cols
}

// Index maps (row, col) to a row-major linear index. No bounds check.
func (s Shape) Index(row, col int) int {
	return row*s.Cols + col
}

// Coord converts a row-major linear index back to (row, col).
func (s Shape) Coord(p int) (row, col int) {
	return p / s.Cols, p % s.Cols
}

// Contains reports whether (row, col) lies inside the image.
func (s Shape) Contains(row, col int) bool {
	return row >= 0 && row < s.Rows && col >= 0 && col < s.Cols
}
