// SPDX-License-Identifier: MIT

package regions

import (
	"errors"
	"fmt"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// Sentinel errors for region analysis.
var (
	// ErrSize indicates a buffer whose length differs from the image shape.
	ErrSize = errors.New("regions: buffer length does not match image shape")
	// ErrRegionIndex indicates a requested region label is out of range.
	ErrRegionIndex = errors.New("regions: region label out of range")
	// ErrNoPath indicates no conversion path exists between two regions.
	ErrNoPath = errors.New("regions: no path between specified regions")
)

// Region summarizes one labeled region.
type Region struct {
	Label int // 1-based label, as in Label's output
	Area  int // number of pixels

	// Bounding box, inclusive.
	Top, Left, Bottom, Right int

	Peak float64 // largest pixel value inside the region
	Sum  float64 // sum of pixel values inside the region
}

// Height returns the bounding box height.
func (r Region) Height() int { return r.Bottom - r.Top + 1 }

// Width returns the bounding box width.
func (r Region) Width() int { return r.Right - r.Left + 1 }

// adjacency builds the SkipCenter walker for conn.
func adjacency(shape neighborhood.Shape, conn neighborhood.Connectivity) (*neighborhood.Walker, error) {
	nh, err := neighborhood.FromConnectivity(conn)
	if err != nil {
		return nil, err
	}
	return neighborhood.NewWalker(nh, shape, neighborhood.SkipCenter)
}

func checkSize(n int, shape neighborhood.Shape) error {
	if n != shape.Len() {
		return fmt.Errorf("%w: got %d, want %d", ErrSize, n, shape.Len())
	}
	return nil
}
