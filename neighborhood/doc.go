// SPDX-License-Identifier: MIT

// Package neighborhood describes structuring elements as lists of relative
// 2-D offsets and walks them over a fixed image shape.
//
// What:
//
//   - Neighborhood is an immutable, ordered list of Offset{Row, Col} values,
//     built from a connectivity (4 or 8) or from a mask plus an Origin policy.
//   - Walker binds a Neighborhood to one image Shape and a Flags value. It
//     precomputes linear offsets and classifies every offset as leading,
//     trailing or center with respect to a raster scan.
//   - Cursor is produced by Walker.Bind and yields, lazily, every active
//     in-bounds neighbor of one center pixel.
//
// Why:
//
//   - Every morphology operator in this module (flat and non-flat gray,
//     binary, reconstruction, region labeling) is written on top of the
//     single "next in-bounds neighbor" primitive.
//   - Reconstruction needs three views of one base neighborhood (full,
//     causal, anti-causal); Flags derive them without copying offsets by hand.
//
// Layout:
//
//	Images are flat row-major slices: index = row*Cols + col.
//	Offset{Row: 1, Col: 0} is the pixel directly below the center.
//
// Concurrency:
//
//   - Neighborhood and Walker are read-only after construction and may be
//     shared across goroutines.
//   - Cursor carries the only mutable state; give each goroutine its own.
//
// Complexity:
//
//   - NewWalker: O(K) for K offsets.
//   - Walker.Bind: O(1) (two dimensions).
//   - Full scan of one Cursor: O(K).
//
// Errors:
//
//   - ErrConnectivity: connectivity other than 4 or 8.
//   - ErrOrigin: unknown Origin policy.
//   - ErrMaskShape: mask length does not equal rows*cols, or rows/cols ≤ 0.
//   - ErrShape: image shape with non-positive rows or cols.
//   - ErrPixelIndex: BindChecked on an index outside the image.
package neighborhood
