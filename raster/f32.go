// SPDX-License-Identifier: MIT

package raster

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// magic opens every FormatF32 stream.
var magic = [4]byte{'M', 'F', '3', '2'}

const (
	// maxSamples bounds the raster size a header may declare.
	maxSamples = 1 << 31

	// chunkSamples is how many samples are read per step; memory grows with
	// the samples that actually arrive, not with the declared size.
	chunkSamples = 1 << 16
)

type f32Header struct {
	Magic      [4]byte
	Rows, Cols uint32
}

func encodeF32(dst io.Writer, r *Raster) error {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	h := f32Header{Magic: magic, Rows: uint32(r.Rows), Cols: uint32(r.Cols)}
	if err := binary.Write(enc, binary.LittleEndian, h); err != nil {
		_ = enc.Close()
		return fmt.Errorf("%w: header: %w", ErrWrite, err)
	}
	if err := binary.Write(enc, binary.LittleEndian, r.Data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("%w: samples: %w", ErrWrite, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func decodeF32(src io.Reader) (*Raster, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer dec.Close()

	var h f32Header
	if err := binary.Read(dec, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, zstd.ErrMagicMismatch) {
			return nil, fmt.Errorf("%w: not a zstd stream", ErrFormat)
		}
		return nil, fmt.Errorf("%w: header: %w", ErrRead, err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, h.Magic[:])
	}
	n := uint64(h.Rows) * uint64(h.Cols)
	if h.Rows == 0 || h.Cols == 0 || n > maxSamples {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, h.Rows, h.Cols)
	}

	data, err := readSamples(dec, int(n))
	if err != nil {
		return nil, err
	}
	return &Raster{Rows: int(h.Rows), Cols: int(h.Cols), Data: data}, nil
}

// readSamples reads n little-endian float32 values in chunks.
func readSamples(src io.Reader, n int) ([]float32, error) {
	data := make([]float32, 0, min(n, chunkSamples))
	chunk := make([]float32, min(n, chunkSamples))
	for len(data) < n {
		part := chunk[:min(n-len(data), len(chunk))]
		if err := binary.Read(src, binary.LittleEndian, part); err != nil {
			return nil, fmt.Errorf("%w: samples %d of %d: %w", ErrRead, len(data), n, err)
		}
		data = append(data, part...)
	}
	return data, nil
}
