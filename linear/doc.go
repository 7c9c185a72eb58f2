// SPDX-License-Identifier: MIT

// Package linear implements flat erosion and dilation by line segments with
// the van Herk / Gil-Werman algorithm, and 2-D elements built from lines.
//
// What:
//
//	For a segment of λ pixels whose origin sits o pixels from its left end,
//	the 1-D erosion is r[x] = min f[x-o .. x-o+λ-1], with pad standing in
//	for samples outside f. The cost is three comparisons per sample,
//	whatever λ is.
//
// How:
//
//	The input is padded to a multiple of λ and split into blocks of λ.
//	g holds running minima from each block start, h running minima to each
//	block end, and r[x] = min(g[x+λ-o-1], h[x-o]) covers the window exactly.
//
// 2-D:
//
//	Rectangles decompose exactly into a row pass and a column pass.
//	Diagonal and anti-diagonal segments run along image diagonals.
//	ErodeOctagon composes all four orientations. Partial sums of the
//	segments can leave the image, so the passes run on a copy padded by the
//	radius with the largest value; the result equals erosion by the Octagon
//	neighborhood everywhere. Package tophat uses it for WithOctagon.
//
// Errors:
//
//   - ErrLambda: non-positive segment length or negative radius.
//   - ErrOrigin: origin outside the segment or rectangle.
//   - ErrSize: buffer lengths that do not match.
package linear
