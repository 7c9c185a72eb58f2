// SPDX-License-Identifier: MIT

package raster

import (
	"gonum.org/v1/gonum/mat"
)

// FromDense copies a gonum matrix into a raster, converting to float32.
// Rows of the matrix become raster rows.
func FromDense(m mat.Matrix) *Raster {
	rows, cols := m.Dims()
	r := &Raster{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			r.Data[i*cols+j] = float32(m.At(i, j))
		}
	}
	return r
}

// Dense copies the raster into a new gonum dense matrix.
//
// Returns ErrSize when the raster is invalid.
func (r *Raster) Dense() (*mat.Dense, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	data := make([]float64, len(r.Data))
	for i, v := range r.Data {
		data[i] = float64(v)
	}
	return mat.NewDense(r.Rows, r.Cols, data), nil
}
