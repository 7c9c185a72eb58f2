// SPDX-License-Identifier: MIT

package packed

import (
	"fmt"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// shiftLeft and shiftRight give 0 for a shift of a full word.
func shiftLeft(x uint32, s int) uint32 {
	switch {
	case s == 0:
		return x
	case s >= BitsPerWord:
		return 0
	default:
		return x << s
	}
}

func shiftRight(x uint32, s int) uint32 {
	switch {
	case s == 0:
		return x
	case s >= BitsPerWord:
		return 0
	default:
		return x >> s
	}
}

// step is one offset translated into word-row moves and bit shifts.
type step struct {
	col    int // column offset
	row1   int // ⌊Δr/32⌋
	row2   int // row1 + 1
	shift1 int // Δr - 32·row1, left shift into row1
	shift2 int // 32 - shift1, right shift into row2
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// plan precomputes one step per offset, negated when reflect is set.
func plan(offsets []neighborhood.Offset, reflect bool) []step {
	steps := make([]step, len(offsets))
	for k, o := range offsets {
		if reflect {
			o = o.Neg()
		}
		r1 := floorDiv(o.Row, BitsPerWord)
		s1 := o.Row - BitsPerWord*r1
		steps[k] = step{col: o.Col, row1: r1, row2: r1 + 1, shift1: s1, shift2: BitsPerWord - s1}
	}
	return steps
}

// scatter ORs every word of src, through steps, into dst. With complement
// set, src words are inverted first and the last word row is restricted to
// mask.
func scatter(src, dst []uint32, wordRows, cols int, steps []step, complement bool, mask uint32) {
	i := 0
	for c := 0; c < cols; c++ {
		for r := 0; r < wordRows; r++ {
			val := src[i]
			i++
			if complement {
				val = ^val
				if r == wordRows-1 {
					val &= mask
				}
			}
			if val == 0 {
				continue
			}
			for _, s := range steps {
				cc := c + s.col
				if cc < 0 || cc >= cols {
					continue
				}
				if rr := r + s.row1; rr >= 0 && rr < wordRows {
					dst[cc*wordRows+rr] |= shiftLeft(val, s.shift1)
				}
				if rr := r + s.row2; rr >= 0 && rr < wordRows {
					dst[cc*wordRows+rr] |= shiftRight(val, s.shift2)
				}
			}
		}
	}
}

func checkWords(in, out []uint32, wordRows, cols int, offsets []neighborhood.Offset) error {
	if len(offsets) == 0 {
		return ErrNoOffsets
	}
	if n := wordRows * cols; len(in) != n || len(out) != n {
		return fmt.Errorf("%w: in %d, out %d, want %d words", ErrSize, len(in), len(out), n)
	}
	return nil
}

// DilateWords ORs the dilation of in into out. out is not cleared first.
// Bits past rows in the last word row of out are cleared.
//
// Returns ErrNoOffsets or ErrSize.
func DilateWords(in, out []uint32, wordRows, cols, rows int, offsets []neighborhood.Offset) error {
	if err := checkWords(in, out, wordRows, cols, offsets); err != nil {
		return err
	}
	scatter(in, out, wordRows, cols, plan(offsets, false), false, 0)
	maskLastRow(out, wordRows, cols, lastRowMask(rows))
	return nil
}

// ErodeWords writes the erosion of in into out, overwriting it.
//
// Stage 1 (Complement): dilate ^in, padding bits masked, by the reflected offsets.
// Stage 2 (Restore): complement the result and mask the padding bits again.
//
// Returns ErrNoOffsets or ErrSize.
func ErodeWords(in, out []uint32, wordRows, cols, rows int, offsets []neighborhood.Offset) error {
	if err := checkWords(in, out, wordRows, cols, offsets); err != nil {
		return err
	}
	mask := lastRowMask(rows)
	clear(out)
	scatter(in, out, wordRows, cols, plan(offsets, true), true, mask)
	for k := range out {
		out[k] = ^out[k]
	}
	maskLastRow(out, wordRows, cols, mask)
	return nil
}

func maskLastRow(words []uint32, wordRows, cols int, mask uint32) {
	if wordRows == 0 {
		return
	}
	for c := 0; c < cols; c++ {
		words[c*wordRows+wordRows-1] &= mask
	}
}

// Dilate returns the dilation of in: pixel p+b is set for every set pixel
// p and every offset b.
func Dilate(in *Image, offsets []neighborhood.Offset) (*Image, error) {
	out, err := New(in.Shape())
	if err != nil {
		return nil, err
	}
	if err := DilateWords(in.Words, out.Words, in.WordRows, in.Cols, in.Rows, offsets); err != nil {
		return nil, err
	}
	return out, nil
}

// Erode returns the erosion of in: pixel p is set when p+b is set, or lies
// outside the image, for every offset b.
func Erode(in *Image, offsets []neighborhood.Offset) (*Image, error) {
	out, err := New(in.Shape())
	if err != nil {
		return nil, err
	}
	if err := ErodeWords(in.Words, out.Words, in.WordRows, in.Cols, in.Rows, offsets); err != nil {
		return nil, err
	}
	return out, nil
}
