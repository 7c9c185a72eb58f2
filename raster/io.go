// SPDX-License-Identifier: MIT

package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Open reads the raster at path, choosing the codec from its extension.
func Open(path string) (*Raster, error) {
	format := FormatOf(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %q", ErrFormat, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	r, err := Decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode reads one raster in the given format from src.
func Decode(src io.Reader, format Format) (*Raster, error) {
	switch format {
	case FormatTIFF:
		return decodeTIFF(src)
	case FormatF32:
		return decodeF32(src)
	default:
		return nil, fmt.Errorf("%w: %v", ErrFormat, format)
	}
}

// Write stores r at path, choosing the codec from its extension. The file
// is created or truncated.
func Write(path string, r *Raster) (err error) {
	format := FormatOf(path)
	if format == FormatUnknown {
		return fmt.Errorf("%w: %q", ErrFormat, path)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if format == FormatTIFF {
		if err := checkGray16(r); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrWrite, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, r, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Encode writes r to dst in the given format.
func Encode(dst io.Writer, r *Raster, format Format) error {
	if err := r.Validate(); err != nil {
		return err
	}
	switch format {
	case FormatTIFF:
		return encodeTIFF(dst, r)
	case FormatF32:
		return encodeF32(dst, r)
	default:
		return fmt.Errorf("%w: %v", ErrFormat, format)
	}
}
