// SPDX-License-Identifier: MIT

// Package regions finds connected regions of foreground pixels in binary
// images, typically the thresholded output of a top-hat transform.
//
// What:
//
//   - Threshold turns a grayscale image into a foreground mask.
//   - Label assigns 1..count to the connected regions, 0 to background.
//   - Components lists the pixels of each region.
//   - Describe summarizes each region (area, bounding box, peak, sum).
//   - Bridge finds the fewest background pixels to convert so that two
//     regions touch (0-1 BFS).
//
// Why:
//
//   - Counting and measuring bright objects after background removal.
//   - Measuring how close two objects are in pixel conversions.
//
// Adjacency:
//
//	Conn4 (edge neighbors) or Conn8 (edge and vertex neighbors), walked with
//	a neighborhood.Walker built with SkipCenter.
//
// Complexity:
//
//   - Label, Components: O(N·d), Memory: O(N)   (d = 4 or 8).
//   - Bridge:            O(N·d), Memory: O(N).
//
// Errors:
//
//   - ErrSize: buffers that do not match the shape.
//   - ErrRegionIndex: Bridge called with a label outside 1..count.
//   - ErrNoPath: no conversion path between the two regions.
//   - neighborhood.ErrConnectivity, neighborhood.ErrShape: invalid arguments.
package regions
