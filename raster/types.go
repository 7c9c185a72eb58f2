// SPDX-License-Identifier: MIT

package raster

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// Sentinel errors for raster I/O.
var (
	// ErrFormat indicates an unknown or malformed raster format.
	ErrFormat = errors.New("raster: unsupported format")

	// ErrRead indicates a raster that could not be read.
	ErrRead = errors.New("raster: read failed")

	// ErrWrite indicates a raster that could not be written.
	ErrWrite = errors.New("raster: write failed")

	// ErrSize indicates inconsistent raster dimensions.
	ErrSize = errors.New("raster: invalid size")
)

// Format identifies an on-disk encoding.
type Format int

const (
	// FormatUnknown is returned by FormatOf for unrecognized paths.
	FormatUnknown Format = iota
	// FormatTIFF is a baseline TIFF image.
	FormatTIFF
	// FormatF32 is the zstd-compressed float32 stream.
	FormatF32
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatTIFF:
		return "tiff"
	case FormatF32:
		return "f32"
	default:
		return "unknown"
	}
}

// FormatOf maps a file name to its format by extension, case-insensitively.
func FormatOf(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".f32.zst"):
		return FormatF32
	case strings.HasSuffix(name, ".tif"), strings.HasSuffix(name, ".tiff"):
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

// Raster is a single-band float32 image in row-major order.
type Raster struct {
	Rows, Cols int
	Data       []float32
}

// New allocates a zero-filled rows×cols raster.
func New(rows, cols int) (*Raster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, rows, cols)
	}
	return &Raster{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}, nil
}

// Shape returns the raster dimensions as a neighborhood.Shape.
func (r *Raster) Shape() neighborhood.Shape {
	return neighborhood.Shape{Rows: r.Rows, Cols: r.Cols}
}

// At returns the sample at (row, col). No bounds check beyond the slice's.
func (r *Raster) At(row, col int) float32 { return r.Data[row*r.Cols+col] }

// Validate reports ErrSize for non-positive dimensions or a Data length
// other than Rows·Cols.
func (r *Raster) Validate() error {
	if r.Rows <= 0 || r.Cols <= 0 || len(r.Data) != r.Rows*r.Cols {
		return fmt.Errorf("%w: %dx%d with %d samples", ErrSize, r.Rows, r.Cols, len(r.Data))
	}
	return nil
}
