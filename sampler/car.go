package sampler

import (
	"math"

	"github.com/CraigKelly/carnet/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CAR evaluates the conditional autoregressive likelihood
//
//	S[r,c] ~ Normal(mu[r,c], 1/tau),  mu = S·M
//
// All buffers are allocated once and reused. Between full refreshes the
// residuals are kept current incrementally by Shift, which touches only the
// two columns an edge feeds.
type CAR struct {
	S  *mat.Dense // n×p standardized observations (read only)
	M  *mat.Dense // p×p assembled effect matrix
	Mu *mat.Dense // n×p conditional means
	R  *mat.Dense // n×p residuals S - Mu

	n, p  int
	colSS []float64 // colSS[c] = sum_r S[r,c]^2, fixed
}

// NewCAR allocates an evaluator for the given standardized data
func NewCAR(s *mat.Dense) *CAR {
	n, p := s.Dims()
	c := &CAR{
		S:     s,
		M:     mat.NewDense(p, p, nil),
		Mu:    mat.NewDense(n, p, nil),
		R:     mat.NewDense(n, p, nil),
		n:     n,
		p:     p,
		colSS: make([]float64, p),
	}

	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, s)
		c.colSS[j] = floats.Dot(col, col)
	}

	c.R.Copy(s)
	return c
}

// Cells is n·p, the number of likelihood terms
func (c *CAR) Cells() int {
	return c.n * c.p
}

// Refresh rebuilds M from beta and recomputes Mu and R from scratch
func (c *CAR) Refresh(edges *model.EdgeIndex, beta []float64) {
	Assemble(c.M, edges, beta)
	c.Mu.Mul(c.S, c.M)
	c.R.Sub(c.S, c.Mu)
}

// SSR is the sum of squared residuals over every cell
func (c *CAR) SSR() float64 {
	raw := c.R.RawMatrix()
	if raw.Stride == c.p {
		d := raw.Data[:c.n*c.p]
		return floats.Dot(d, d)
	}

	ssr := 0.0
	for r := 0; r < c.n; r++ {
		row := raw.Data[r*raw.Stride : r*raw.Stride+c.p]
		ssr += floats.Dot(row, row)
	}
	return ssr
}

// LogLik is the full log likelihood at precision tau
func (c *CAR) LogLik(tau float64) float64 {
	cells := float64(c.Cells())
	return 0.5*cells*(math.Log(tau)-math.Log(2*math.Pi)) - 0.5*tau*c.SSR()
}

// DeltaLogLik is the change in log likelihood from moving the effect of the
// (0-based) cell pair (i,j) by delta, with the rest of M held fixed:
//
//	-tau/2 * [delta^2 (SS_i + SS_j) - 2 delta (sum R_rj S_ri + sum R_ri S_rj)]
func (c *CAR) DeltaLogLik(i, j int, delta, tau float64) float64 {
	sRaw := c.S.RawMatrix()
	rRaw := c.R.RawMatrix()

	cross := 0.0
	for r := 0; r < c.n; r++ {
		so := r * sRaw.Stride
		ro := r * rRaw.Stride
		cross += rRaw.Data[ro+j]*sRaw.Data[so+i] + rRaw.Data[ro+i]*sRaw.Data[so+j]
	}

	quad := c.colSS[i] + c.colSS[j]
	return -0.5 * tau * (delta*delta*quad - 2*delta*cross)
}

// Shift moves M[i,j] = M[j,i] by delta and updates Mu and R to match
func (c *CAR) Shift(i, j int, delta float64) {
	v := c.M.At(i, j) + delta
	c.M.Set(i, j, v)
	c.M.Set(j, i, v)

	sRaw := c.S.RawMatrix()
	rRaw := c.R.RawMatrix()
	muRaw := c.Mu.RawMatrix()
	for r := 0; r < c.n; r++ {
		so := r * sRaw.Stride
		di := sRaw.Data[so+j] * delta // into column i
		dj := sRaw.Data[so+i] * delta // into column j

		ro := r * rRaw.Stride
		rRaw.Data[ro+i] -= di
		rRaw.Data[ro+j] -= dj

		mo := r * muRaw.Stride
		muRaw.Data[mo+i] += di
		muRaw.Data[mo+j] += dj
	}
}
