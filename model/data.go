package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Standardize returns a copy of raw where every column has zero mean and unit
// (sample) variance. A column that is constant or holds a non-finite value is
// an ErrData.
func Standardize(raw mat.Matrix) (*mat.Dense, error) {
	n, p := raw.Dims()
	if n < 2 {
		return nil, DataErrorf("At least 2 observations are required to standardize, found %d", n)
	}

	out := mat.DenseCopyOf(raw)
	col := make([]float64, n)
	for c := 0; c < p; c++ {
		mat.Col(col, c, out)
		for r, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, DataErrorf("Observation %d variable %d is not finite", r+1, c+1)
			}
		}

		mean, sd := stat.MeanStdDev(col, nil)
		if !(sd > 0) || math.IsInf(sd, 0) {
			return nil, DataErrorf("Variable %d has zero variance and can not be standardized", c+1)
		}

		for r, v := range col {
			col[r] = (v - mean) / sd
		}
		out.SetCol(c, col)
	}

	return out, nil
}
