package profile

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Precision is the number of decimal places kept by NormalizeRow
const Precision = 2

// NormalizeRow min-max normalizes one channel vector into [0,1], rounding
// each value half away from zero to Precision decimals. The input is not
// modified.
//
// A constant (or empty) row has no range to normalize against. In that case
// the returned row is all zeros and ok is false so the caller can count it.
func NormalizeRow(row []float64) (out []float64, ok bool) {
	out = make([]float64, len(row))
	if len(row) == 0 {
		return out, false
	}

	lo := floats.Min(row)
	hi := floats.Max(row)
	if hi == lo {
		return out, false
	}

	span := hi - lo
	for i, v := range row {
		out[i] = scalar.Round((v-lo)/span, Precision)
	}
	return out, true
}
