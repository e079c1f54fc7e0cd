package sampler

import (
	"github.com/CraigKelly/carnet/model"
	"gonum.org/v1/gonum/mat"
)

// Assemble writes the symmetric, zero-diagonal effect matrix for beta into m,
// which must be p×p. m is overwritten completely.
func Assemble(m *mat.Dense, edges *model.EdgeIndex, beta []float64) {
	m.Zero()
	for k, b := range beta {
		i, j := edges.Cell(k)
		m.Set(i, j, b)
		m.Set(j, i, b)
	}
}
