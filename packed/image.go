// SPDX-License-Identifier: MIT

package packed

import (
	"errors"
	"fmt"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// BitsPerWord is the number of pixels packed into one word.
const BitsPerWord = 32

var (
	// ErrNoOffsets indicates an empty structuring element.
	ErrNoOffsets = errors.New("packed: structuring element has no offsets")

	// ErrSize indicates buffers that do not match the packed geometry.
	ErrSize = errors.New("packed: buffer length does not match image geometry")
)

// Image is a binary image packed 32 rows per word, column-major.
type Image struct {
	Words    []uint32
	WordRows int
	Rows     int
	Cols     int
}

// WordRowsFor returns the number of word rows needed for rows pixel rows.
func WordRowsFor(rows int) int {
	return (rows + BitsPerWord - 1) / BitsPerWord
}

// New returns an all-clear packed image of the given shape.
func New(shape neighborhood.Shape) (*Image, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	wr := WordRowsFor(shape.Rows)
	return &Image{
		Words:    make([]uint32, wr*shape.Cols),
		WordRows: wr,
		Rows:     shape.Rows,
		Cols:     shape.Cols,
	}, nil
}

// Pack packs a row-major binary image.
func Pack(bits []bool, shape neighborhood.Shape) (*Image, error) {
	m, err := New(shape)
	if err != nil {
		return nil, err
	}
	if len(bits) != shape.Len() {
		return nil, fmt.Errorf("%w: got %d pixels, want %d", ErrSize, len(bits), shape.Len())
	}
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if bits[r*shape.Cols+c] {
				m.Words[c*m.WordRows+r/BitsPerWord] |= 1 << (r % BitsPerWord)
			}
		}
	}
	return m, nil
}

// Shape returns the unpacked image shape.
func (m *Image) Shape() neighborhood.Shape {
	return neighborhood.Shape{Rows: m.Rows, Cols: m.Cols}
}

// Get reports whether pixel (row, col) is set.
func (m *Image) Get(row, col int) bool {
	w := m.Words[col*m.WordRows+row/BitsPerWord]
	return w&(1<<(row%BitsPerWord)) != 0
}

// Unpack returns the row-major binary image.
func (m *Image) Unpack() []bool {
	out := make([]bool, m.Rows*m.Cols)
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			out[r*m.Cols+c] = m.Get(r, c)
		}
	}
	return out
}

// lastRowMask keeps the real bits of the last word row.
func lastRowMask(rows int) uint32 {
	n := rows % BitsPerWord
	if n == 0 {
		n = BitsPerWord
	}
	return shiftLeft(1, n) - 1
}
