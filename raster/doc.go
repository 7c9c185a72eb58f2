// SPDX-License-Identifier: MIT

// Package raster reads and writes single-band float32 rasters, such as
// digital surface models, for the top-hat pipeline.
//
// What:
//
//   - Raster: rows×cols float32 samples, row-major.
//   - Open / Write: file I/O, format chosen by extension.
//   - Decode / Encode: the same codecs on io.Reader / io.Writer.
//   - FromDense / Dense: adapters to gonum matrices.
//
// Formats:
//
//   - FormatF32 (".f32.zst"): the float raster format. A zstd stream
//     holding the magic "MF32", rows and cols as little-endian uint32, then
//     rows·cols little-endian float32 samples. Lossless, signs and
//     fractions included.
//   - FormatTIFF (".tif", ".tiff"): integer images only, read through
//     golang.org/x/image/tiff. Gray images keep their sample value, color
//     images are converted to 16-bit luminance. Floating-point sample TIFFs
//     are rejected with ErrFormat. Written as 16-bit gray; a raster with a
//     sample that is not an integer in [0, 65535] is rejected with
//     ErrFormat rather than rounded.
//
// Errors:
//
//   - ErrFormat: unknown extension, bad magic, unsupported encoding, or a
//     raster 16-bit gray TIFF cannot hold.
//   - ErrRead / ErrWrite: I/O or codec failure, wrapping the cause.
//   - ErrSize: Data length differs from Rows·Cols, or a non-positive size.
package raster
