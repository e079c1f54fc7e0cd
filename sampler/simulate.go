package sampler

import (
	"github.com/CraigKelly/carnet/model"
	"github.com/CraigKelly/carnet/rand"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// SimulateCAR draws n observations from the joint Gaussian implied by a CAR
// model with effect matrix m and noise precision tau, i.e. precision
// tau·(I - m). m must be symmetric with a zero diagonal and I - m must be
// positive definite.
func SimulateCAR(gen *rand.Generator, m mat.Symmetric, n int, tau float64) (*mat.Dense, error) {
	p := m.SymmetricDim()
	if n < 1 {
		return nil, errors.Errorf("Invalid observation count %d", n)
	}
	if !(tau > 0) {
		return nil, errors.Errorf("Invalid noise precision %v", tau)
	}

	prec := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		if m.At(i, i) != 0 {
			return nil, errors.Errorf("Effect matrix has non-zero diagonal at %d", i+1)
		}
		for j := i; j < p; j++ {
			v := -m.At(i, j)
			if i == j {
				v = 1
			}
			prec.SetSym(i, j, tau*v)
		}
	}

	dist, ok := distmv.NewNormalPrecision(make([]float64, p), prec, gen)
	if !ok {
		return nil, errors.Errorf("Precision matrix tau(I - M) is not positive definite")
	}

	out := mat.NewDense(n, p, nil)
	for r := 0; r < n; r++ {
		dist.Rand(out.RawRowView(r))
	}
	return out, nil
}

// EffectMatrix assembles a p×p symmetric effect matrix from per-edge values
func EffectMatrix(edges *model.EdgeIndex, beta []float64) *mat.SymDense {
	m := mat.NewDense(edges.P, edges.P, nil)
	Assemble(m, edges, beta)

	sym := mat.NewSymDense(edges.P, nil)
	for i := 0; i < edges.P; i++ {
		for j := i + 1; j < edges.P; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}
	return sym
}
