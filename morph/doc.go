// SPDX-License-Identifier: MIT

// Package morph implements grayscale and binary erosion and dilation on
// flat row-major image buffers, on top of neighborhood.Walker.
//
// What:
//
//   - Flat grayscale erosion/dilation (min/max over the structuring element).
//   - Non-flat grayscale erosion/dilation with one additive height per
//     structuring-element slot, saturating and rounding for integer types.
//   - Binary erosion/dilation: a generic walker form, a 2-D form that splits
//     the image into a bounds-free interior and walker-driven edge strips,
//     and a hard-coded 3×3 all-ones fast path.
//   - Opening, closing and morphological gradient built from the above.
//
// Element types:
//
//	uint8, uint16, uint32, int8, int16, int32, float32, float64.
//	Integer outputs of non-flat operators are clamped to the type range and
//	rounded half up; floating outputs are stored as computed.
//
// Conventions:
//
//   - Low-level functions (ErodeFlat, DilateFlat, ErodeLogical, ...) take a
//     caller-built Walker and caller-owned in/out buffers that must not alias.
//   - Gather-style dilation (DilateFlat, DilateNonFlat) expects a walker built
//     from the reflected structuring element.
//   - Scatter-style binary dilation (DilateLogical and friends) expects a
//     walker built from the structuring element itself; both forms compute
//     the same set {a+b}.
//   - High-level functions (Erode, Dilate, ErodeBinary, ...) allocate the
//     output and build the right walkers.
//   - A pixel whose neighbor set is empty (possible with skip flags or
//     structuring elements without the center) keeps its input value under
//     gray erosion and is set under binary erosion.
//
// Parallelism:
//
//	WithWorkers(n) splits the image into row blocks processed by n
//	goroutines. The Walker is shared, every block uses its own Cursors.
//
// Errors:
//
//   - ErrSize: buffer lengths differ from the walker's image shape.
//   - ErrHeights: heights length differs from the number of neighbors.
//   - ErrNotOnes3x3: 3×3 fast path called with another structuring element.
//   - ErrOptionViolation: invalid Option value.
package morph
