// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/tiff"
)

func decodeTIFF(src io.Reader) (*Raster, error) {
	img, err := tiff.Decode(src)
	if err != nil {
		switch err.(type) {
		case tiff.UnsupportedError:
			return nil, fmt.Errorf("%w: %w (floating-point rasters must be stored as .f32.zst)", ErrFormat, err)
		case tiff.FormatError:
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	b := img.Bounds()
	r, err := New(b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.Data[i] = sample(img, x, y)
			i++
		}
	}
	return r, nil
}

// sample returns the gray value of img at (x, y) on the image's own scale.
func sample(img image.Image, x, y int) float32 {
	switch m := img.(type) {
	case *image.Gray:
		return float32(m.GrayAt(x, y).Y)
	case *image.Gray16:
		return float32(m.Gray16At(x, y).Y)
	default:
		return float32(color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y)
	}
}

// encodeTIFF writes r as 16-bit gray.
func encodeTIFF(dst io.Writer, r *Raster) error {
	if err := checkGray16(r); err != nil {
		return err
	}
	img := image.NewGray16(image.Rect(0, 0, r.Cols, r.Rows))
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			y, _ := gray16(r.At(row, col))
			img.SetGray16(col, row, color.Gray16{Y: y})
		}
	}
	if err := tiff.Encode(dst, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// checkGray16 reports ErrFormat for the first sample 16-bit gray cannot
// hold exactly.
func checkGray16(r *Raster) error {
	for i, v := range r.Data {
		if _, ok := gray16(v); !ok {
			return fmt.Errorf("%w: sample %v at (%d,%d) is not an integer in [0, 65535]; use .f32.zst",
				ErrFormat, v, i/r.Cols, i%r.Cols)
		}
	}
	return nil
}

// gray16 converts v when it is an integer in [0, 65535]. NaN is rejected.
func gray16(v float32) (uint16, bool) {
	f := float64(v)
	if !(f >= 0 && f <= math.MaxUint16) || f != math.Trunc(f) {
		return 0, false
	}
	return uint16(f), true
}
