// Package profile implements the numeric chain that turns per-channel line
// profiles into position-major normalized spectra.
//
// Matrices are plain row-major [][]float64 values. A raw profile is
// channel-major (one row per channel), everything after transposition is
// position-major (one row per sample along the line).
package profile

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrJagged is returned when the rows of a matrix differ in length.
// It means sampling produced a different number of positions for some
// channel and the profile cannot be trusted.
var ErrJagged = errors.New("profile: jagged matrix")

// Matrix is a row-major 2D matrix
type Matrix [][]float64

// Dims returns the number of rows and columns of m.
// An error wrapping ErrJagged is returned if the rows are not all the same length.
func (m Matrix) Dims() (rows, cols int, err error) {
	rows = len(m)
	if rows == 0 {
		return 0, 0, nil
	}
	cols = len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d values, want %d", ErrJagged, i, len(row), cols)
		}
	}
	return rows, cols, nil
}

// Clone returns a deep copy of m
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Column returns a copy of column j
func (m Matrix) Column(j int) []float64 {
	col := make([]float64, len(m))
	for i, row := range m {
		col[i] = row[j]
	}
	return col
}

// Transpose maps an A x B matrix to a new B x A matrix with
// out[j][i] == m[i][j]. The input is not modified.
func Transpose(m Matrix) (Matrix, error) {
	rows, cols, err := m.Dims()
	if err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return Matrix{}, nil
	}

	flat := make([]float64, 0, rows*cols)
	for _, row := range m {
		flat = append(flat, row...)
	}
	dense := mat.NewDense(rows, cols, flat)
	t := mat.DenseCopyOf(dense.T())

	out := make(Matrix, cols)
	for i := range out {
		out[i] = append([]float64(nil), t.RawRowView(i)...)
	}
	return out, nil
}
