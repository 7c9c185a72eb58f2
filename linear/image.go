// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"
	"sort"

	"github.com/xinyuangui2/morpho/morph"
	"github.com/xinyuangui2/morpho/neighborhood"
)

// direction of a segment in the image plane.
type direction int

const (
	horizontal   direction = iota // (0, k)
	vertical                      // (k, 0)
	diagonal                      // (k, k)
	antiDiagonal                  // (k, -k)
)

// track is one image line: n pixels from start, step apart.
type track struct {
	start, step, n int
}

// tracks lists every line of the image along d, each ordered so that
// position j+k along the line is the pixel displaced by k segment steps.
func tracks(shape neighborhood.Shape, d direction) []track {
	rows, cols := shape.Rows, shape.Cols
	var out []track
	switch d {
	case horizontal:
		for r := 0; r < rows; r++ {
			out = append(out, track{start: r * cols, step: 1, n: cols})
		}
	case vertical:
		for c := 0; c < cols; c++ {
			out = append(out, track{start: c, step: cols, n: rows})
		}
	case diagonal:
		for c := 0; c < cols; c++ {
			out = append(out, track{start: c, step: cols + 1, n: min(rows, cols-c)})
		}
		for r := 1; r < rows; r++ {
			out = append(out, track{start: r * cols, step: cols + 1, n: min(rows-r, cols)})
		}
	case antiDiagonal:
		for c := 0; c < cols; c++ {
			out = append(out, track{start: c, step: cols - 1, n: min(rows, c+1)})
		}
		for r := 1; r < rows; r++ {
			out = append(out, track{start: r*cols + cols - 1, step: cols - 1, n: min(rows-r, cols)})
		}
	}
	return out
}

// along filters every line of img along d into out. out may alias img.
func along[T morph.Element](out, img []T, shape neighborhood.Shape, d direction, l *Filter[T], pad T) error {
	buf := make([]T, max(shape.Rows, shape.Cols))
	for _, tr := range tracks(shape, d) {
		line := buf[:tr.n]
		for j, p := 0, tr.start; j < tr.n; j, p = j+1, p+tr.step {
			line[j] = img[p]
		}
		if err := l.Apply(line, line, pad); err != nil {
			return err
		}
		for j, p := 0, tr.start; j < tr.n; j, p = j+1, p+tr.step {
			out[p] = line[j]
		}
	}
	return nil
}

func checkImage(n int, shape neighborhood.Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if n != shape.Len() {
		return fmt.Errorf("%w: got %d, want %d", ErrSize, n, shape.Len())
	}
	return nil
}

func erodeAlong[T morph.Element](img []T, shape neighborhood.Shape, d direction, lambda, origin int) ([]T, error) {
	if err := checkImage(len(img), shape); err != nil {
		return nil, err
	}
	l, err := NewEroder[T](lambda, origin)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(img))
	return out, along(out, img, shape, d, l, padHigh[T]())
}

// ErodeRows erodes every image row by a horizontal segment of lambda pixels,
// origin pixels from its left end.
func ErodeRows[T morph.Element](img []T, shape neighborhood.Shape, lambda, origin int) ([]T, error) {
	return erodeAlong(img, shape, horizontal, lambda, origin)
}

// ErodeCols erodes every image column by a vertical segment, origin pixels
// from its top end.
func ErodeCols[T morph.Element](img []T, shape neighborhood.Shape, lambda, origin int) ([]T, error) {
	return erodeAlong(img, shape, vertical, lambda, origin)
}

// ErodeDiagonal erodes by the segment {(k,k) : -origin <= k < lambda-origin}.
func ErodeDiagonal[T morph.Element](img []T, shape neighborhood.Shape, lambda, origin int) ([]T, error) {
	return erodeAlong(img, shape, diagonal, lambda, origin)
}

// ErodeAntiDiagonal erodes by the segment {(k,-k) : -origin <= k < lambda-origin}.
func ErodeAntiDiagonal[T morph.Element](img []T, shape neighborhood.Shape, lambda, origin int) ([]T, error) {
	return erodeAlong(img, shape, antiDiagonal, lambda, origin)
}

// rectFilters validates a rectangle and returns its row and column filters.
// origin is the position of the origin inside the rectangle, from its
// upper-left corner.
func rectFilters[T morph.Element](height, width int, origin neighborhood.Offset, dilate bool) (rowF, colF *Filter[T], err error) {
	if height < 1 || width < 1 {
		return nil, nil, fmt.Errorf("%w: rectangle %dx%d", ErrLambda, height, width)
	}
	if origin.Row < 0 || origin.Row >= height || origin.Col < 0 || origin.Col >= width {
		return nil, nil, fmt.Errorf("%w: %v in %dx%d", ErrOrigin, origin, height, width)
	}
	if dilate {
		// gathering over the reflected rectangle mirrors the origin
		if rowF, err = NewDilater[T](width, width-1-origin.Col); err != nil {
			return nil, nil, err
		}
		colF, err = NewDilater[T](height, height-1-origin.Row)
		return rowF, colF, err
	}
	if rowF, err = NewEroder[T](width, origin.Col); err != nil {
		return nil, nil, err
	}
	colF, err = NewEroder[T](height, origin.Row)
	return rowF, colF, err
}

// ErodeRect returns the flat erosion of img by a height×width rectangle,
// as a row pass followed by a column pass. The result equals morph.Erode
// with the same rectangle, borders included.
//
// Complexity: O(N) per pass, independent of the rectangle size.
func ErodeRect[T morph.Element](img []T, shape neighborhood.Shape, height, width int, origin neighborhood.Offset) ([]T, error) {
	if err := checkImage(len(img), shape); err != nil {
		return nil, err
	}
	rowF, colF, err := rectFilters[T](height, width, origin, false)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(img))
	pad := padHigh[T]()
	if err := along(out, img, shape, horizontal, rowF, pad); err != nil {
		return nil, err
	}
	return out, along(out, out, shape, vertical, colF, pad)
}

// DilateRect returns the flat dilation of img by a height×width rectangle.
// The result equals morph.Dilate with the same rectangle.
func DilateRect[T morph.Element](img []T, shape neighborhood.Shape, height, width int, origin neighborhood.Offset) ([]T, error) {
	if err := checkImage(len(img), shape); err != nil {
		return nil, err
	}
	rowF, colF, err := rectFilters[T](height, width, origin, true)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(img))
	pad := padLow[T]()
	if err := along(out, img, shape, horizontal, rowF, pad); err != nil {
		return nil, err
	}
	return out, along(out, out, shape, vertical, colF, pad)
}

// octagonArms splits radius into the half-length of the square arms and of
// the diagonal arms; together they reach radius pixels in every axis.
func octagonArms(radius int) (square, diag int) {
	diag = radius / 3
	return radius - 2*diag, diag
}

// Octagon returns the neighborhood swept by ErodeOctagon: the Minkowski sum
// of horizontal, vertical, diagonal and anti-diagonal centered segments.
func Octagon(radius int) (*neighborhood.Neighborhood, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius %d", ErrLambda, radius)
	}
	a, b := octagonArms(radius)
	seen := make(map[neighborhood.Offset]bool)
	for i := -a; i <= a; i++ {
		for j := -a; j <= a; j++ {
			for k := -b; k <= b; k++ {
				for m := -b; m <= b; m++ {
					seen[neighborhood.Offset{Row: i + k + m, Col: j + k - m}] = true
				}
			}
		}
	}
	offsets := make([]neighborhood.Offset, 0, len(seen))
	for o := range seen {
		offsets = append(offsets, o)
	}
	sort.Slice(offsets, func(x, y int) bool {
		if offsets[x].Row != offsets[y].Row {
			return offsets[x].Row < offsets[y].Row
		}
		return offsets[x].Col < offsets[y].Col
	})
	return neighborhood.New(offsets...), nil
}

// ErodeOctagon erodes img by the Octagon of the given radius, one centered
// segment per orientation. The passes run on a copy padded by radius on
// every side, so the result equals morph.Erode with Octagon(radius) at
// every pixel, borders included.
func ErodeOctagon[T morph.Element](img []T, shape neighborhood.Shape, radius int) ([]T, error) {
	if err := checkImage(len(img), shape); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius %d", ErrLambda, radius)
	}
	a, b := octagonArms(radius)
	sq, err := NewEroder[T](2*a+1, a)
	if err != nil {
		return nil, err
	}
	dg, err := NewEroder[T](2*b+1, b)
	if err != nil {
		return nil, err
	}
	pad := padHigh[T]()
	big := neighborhood.Shape{Rows: shape.Rows + 2*radius, Cols: shape.Cols + 2*radius}
	work := make([]T, big.Len())
	for i := range work {
		work[i] = pad
	}
	for r := 0; r < shape.Rows; r++ {
		copy(work[big.Index(r+radius, radius):], img[r*shape.Cols:(r+1)*shape.Cols])
	}

	for _, pass := range []struct {
		d direction
		l *Filter[T]
	}{{horizontal, sq}, {vertical, sq}, {diagonal, dg}, {antiDiagonal, dg}} {
		if err := along(work, work, big, pass.d, pass.l, pad); err != nil {
			return nil, err
		}
	}

	out := make([]T, len(img))
	for r := 0; r < shape.Rows; r++ {
		copy(out[r*shape.Cols:(r+1)*shape.Cols], work[big.Index(r+radius, radius):])
	}
	return out, nil
}
