// SPDX-License-Identifier: MIT

// Package packed implements binary dilation and erosion on images packed
// 32 pixels per word.
//
// Layout:
//
//	Words are stored column-major: word (wr, c) lives at Words[c*WordRows+wr]
//	and its bit b holds pixel (wr*32+b, c). WordRows = ⌈Rows/32⌉; the bits of
//	the last word row beyond Rows are padding and always clear.
//
// Algorithm:
//
//	A row offset Δr splits into a word-row part ⌊Δr/32⌋ and a bit shift
//	Δr - 32·⌊Δr/32⌋ in [0, 32). Dilation ORs every non-zero word, shifted
//	left, into the target word row and, shifted right by the complementary
//	amount, into the next one. Shifts by 0 and by 32 are handled explicitly.
//	Erosion is dilation of the complement by the reflected offsets, then
//	complemented back, with the padding bits masked both ways.
//
// Border policy:
//
//	Pixels outside the image never contribute to dilation and never fail an
//	erosion, which matches morph.DilateLogical and morph.ErodeLogical for
//	structuring elements that contain the origin.
//
// Complexity:
//
//	O(WordRows·Cols·K) for K offsets; empty words are skipped.
//
// Errors:
//
//   - ErrNoOffsets: empty structuring element.
//   - ErrSize: word buffers or pixel buffers of the wrong length.
package packed
