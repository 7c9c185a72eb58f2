// SPDX-License-Identifier: MIT

package reconstruct

import (
	"fmt"

	"github.com/xinyuangui2/morpho/morph"
	"github.com/xinyuangui2/morpho/neighborhood"
)

// HMaxima suppresses every regional maximum whose height over its
// surroundings is at most h: it reconstructs img-h under img. The
// subtraction saturates at the lowest value of T.
//
// Returns ErrNegativeH for h < 0.
func HMaxima[T morph.Element](img []T, shape neighborhood.Shape, h T, opts ...Option) ([]T, error) {
	if h < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeH, h)
	}
	lowest, _, _ := morph.Limits[T]()
	marker := make([]T, len(img))
	for i, v := range img {
		if v < lowest+h {
			marker[i] = lowest
		} else {
			marker[i] = v - h
		}
	}
	return Reconstruct(marker, img, shape, opts...)
}

// OpenByReconstruction erodes img by se and reconstructs the result under
// img. Unlike a plain opening, every structure that survives the erosion
// is restored with its exact shape. se must contain the origin, otherwise
// the erosion can exceed img and ErrMarkerAboveMask is returned.
func OpenByReconstruction[T morph.Element](img []T, shape neighborhood.Shape, se *neighborhood.Neighborhood, opts ...Option) ([]T, error) {
	eroded, err := morph.Erode(img, shape, se)
	if err != nil {
		return nil, err
	}
	return Reconstruct(eroded, img, shape, opts...)
}
