// SPDX-License-Identifier: MIT

package morph

import (
	"fmt"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// prepare validates the image against shape and builds a UseAll walker.
func prepare(n int, shape neighborhood.Shape, nh *neighborhood.Neighborhood, opts []Option) (*neighborhood.Walker, Options, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, o, err
	}
	w, err := neighborhood.NewWalker(nh, shape, neighborhood.UseAll)
	if err != nil {
		return nil, o, err
	}
	if n != shape.Len() {
		return nil, o, fmt.Errorf("%w: got %d, want %d", ErrSize, n, shape.Len())
	}
	return w, o, nil
}

// Erode returns the flat grayscale erosion of img by nh.
//
// Stage 1 (Validate): options, shape, buffer length.
// Stage 2 (Execute): ErodeFlat over row blocks, in parallel with WithWorkers.
func Erode[T Element](img []T, shape neighborhood.Shape, nh *neighborhood.Neighborhood, opts ...Option) ([]T, error) {
	w, o, err := prepare(len(img), shape, nh, opts)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(img))
	err = runBlocks(shape, o.Workers, func(lo, hi int) { erodeFlatRange(img, out, w, lo, hi) })
	return out, err
}

// Dilate returns the flat grayscale dilation of img by nh. The walker is built
// from nh.Reflect().
func Dilate[T Element](img []T, shape neighborhood.Shape, nh *neighborhood.Neighborhood, opts ...Option) ([]T, error) {
	w, o, err := prepare(len(img), shape, nh.Reflect(), opts)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(img))
	err = runBlocks(shape, o.Workers, func(lo, hi int) { dilateFlatRange(img, out, w, lo, hi) })
	return out, err
}

// ErodeNonFlatImage returns the non-flat erosion of img by nh with one height
// per offset of nh.
func ErodeNonFlatImage[T Element](img []T, shape neighborhood.Shape, nh *neighborhood.Neighborhood, heights []float64, opts ...Option) ([]T, error) {
	w, o, err := prepare(len(img), shape, nh, opts)
	if err != nil {
		return nil, err
	}
	if len(heights) != nh.Len() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrHeights, len(heights), nh.Len())
	}
	out := make([]T, len(img))
	err = runBlocks(shape, o.Workers, func(lo, hi int) { erodeNonFlatRange(img, out, w, heights, lo, hi) })
	return out, err
}

// DilateNonFlatImage returns the non-flat dilation of img by nh with one
// height per offset of nh.
func DilateNonFlatImage[T Element](img []T, shape neighborhood.Shape, nh *neighborhood.Neighborhood, heights []float64, opts ...Option) ([]T, error) {
	w, o, err := prepare(len(img), shape, nh.Reflect(), opts)
	if err != nil {
		return nil, err
	}
	if len(heights) != nh.Len() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrHeights, len(heights), nh.Len())
	}
	out := make([]T, len(img))
	err = runBlocks(shape, o.Workers, func(lo, hi int) { dilateNonFlatRange(img, out, w, heights, lo, hi) })
	return out, err
}

// Open returns Dilate(Erode(img)). The result never exceeds img.
func Open[T Element](img []T, shape neighborhood.Shape, nh *neighborhood.Neighborhood, opts ...Option) ([]T, error) {
	e, err := Erode(img, shape, nh, opts...)
	if err != nil {
		return nil, err
	}
	return Dilate(e, shape, nh, opts...)
}

// Close returns Erode(Dilate(img)). The result is never below img.
func Close[T Element](img []T, shape neighborhood.Shape, nh *neighborhood.Neighborhood, opts ...Option) ([]T, error) {
	d, err := Dilate(img, shape, nh, opts...)
	if err != nil {
		return nil, err
	}
	return Erode(d, shape, nh, opts...)
}

// Gradient returns Dilate(img) - Erode(img). The difference is taken in
// float64; integer results saturate at the type's highest value.
func Gradient[T Element](img []T, shape neighborhood.Shape, nh *neighborhood.Neighborhood, opts ...Option) ([]T, error) {
	d, err := Dilate(img, shape, nh, opts...)
	if err != nil {
		return nil, err
	}
	e, err := Erode(img, shape, nh, opts...)
	if err != nil {
		return nil, err
	}
	tr := traitsOf[T]()
	for i := range d {
		d[i] = store[T](float64(d[i])-float64(e[i]), tr)
	}
	return d, nil
}
