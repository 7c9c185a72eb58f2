// SPDX-License-Identifier: MIT

// Package tophat extracts small bright structures from a grayscale image
// with a top-hat by reconstruction:
//
//	result = image - reconstruct(erode(image, se), image)
//
// What:
//
//   - TopHat: float32 raster, structuring element given as a 0/1 mask whose
//     origin is its middle pixel, rounded down for even sizes. A nil mask
//     means the 3×3 block.
//   - Extract: the same pipeline on a Shape, with options for the
//     structuring element (WithElement, WithRect, WithOctagon), worker
//     count, reconstruction connectivity, cancellation and logging.
//   - Objects: thresholds a result and measures its connected regions.
//
// How:
//
//  1. Erode: full rectangles go through the van Herk row and column passes
//     of package linear, WithOctagon elements through linear.ErodeOctagon,
//     other elements through morph.Erode.
//  2. Reconstruct: fast-hybrid reconstruction of the eroded image under
//     the original one (8-connectivity by default).
//  3. Subtract.
//
// Every result pixel is >= 0: the erosion is below the image when the
// element contains its origin, and reconstruction stays between marker
// and mask.
//
// Logging:
//
//	WithLogger takes a zerolog.Logger; stage timings are logged at Debug
//	level and a summary at Info level. The default logger discards.
//
// Errors:
//
//   - ErrSize: image length is not rows·cols.
//   - ErrMask: mask length is not maskRows·maskCols, or the element misses
//     its origin.
//   - ErrOptionViolation: invalid Option value.
//   - Errors of the underlying packages are returned wrapped.
package tophat
