// SPDX-License-Identifier: MIT

// Package reconstruct implements grayscale morphological reconstruction by
// dilation with Vincent's fast-hybrid algorithm.
//
// What:
//
//	Given a marker J and a mask I with J <= I everywhere, the reconstruction
//	is the limit of repeated geodesic dilation: J <- min(dilate(J), I) until
//	nothing changes. The result R satisfies J <= R <= I, and reconstructing
//	R under I again returns R.
//
// How (three phases, J updated in place):
//
//  1. Raster sweep, increasing index, over the causal half of the
//     neighborhood (offsets already visited):
//     J[p] = min(max(J[p], max J[q]), I[p]).
//  2. Antiraster sweep, decreasing index, over the anti-causal half with the
//     same update; p is queued when some anti-causal q has J[q] < J[p] and
//     J[q] < I[q].
//  3. Propagation: pop p from the FIFO; every neighbor q with J[q] < J[p] and
//     J[q] != I[q] becomes min(J[p], I[q]) and is queued.
//
// Termination:
//
//	J only grows and is bounded by I, and a pixel is only queued on a strict
//	increase. The queue has no fixed capacity: its peak size depends on the
//	image content.
//
// Also:
//
//	HMaxima (reconstruction of f-h under f) and OpenByReconstruction
//	(reconstruction of an erosion under the original image).
//
// Options:
//
//	WithConnectivity / WithNeighborhood choose the neighborhood (default
//	8-connectivity), WithContext allows cancelling the propagation phase,
//	WithStats reports queue activity.
//
// Errors:
//
//   - ErrMarkerAboveMask: some J[p] > I[p]; checked before anything is written.
//   - ErrSize: marker and mask lengths differ from the shape.
//   - ErrNegativeH: HMaxima with h < 0.
//   - ErrOptionViolation: invalid Option value.
package reconstruct
