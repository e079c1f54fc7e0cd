package sampler

import (
	"math"

	"github.com/CraigKelly/carnet/model"
	"github.com/CraigKelly/carnet/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SpikeSlab updates p, Gamma, tauprior and Beta for each edge. Edges are
// visited in ascending id order; every Beta move is pushed into the CAR
// evaluator before the next edge is visited.
type SpikeSlab struct {
	gen       *rand.Generator
	edges     *model.EdgeIndex
	prior     *model.Prior
	car       *CAR
	tuner     *StepTuner
	diag      *Diagnostics
	priorOnly bool
}

// NewSpikeSlab wires the per-edge sampler to its collaborators
func NewSpikeSlab(gen *rand.Generator, edges *model.EdgeIndex, prior *model.Prior, car *CAR, tuner *StepTuner, diag *Diagnostics, priorOnly bool) *SpikeSlab {
	return &SpikeSlab{
		gen:       gen,
		edges:     edges,
		prior:     prior,
		car:       car,
		tuner:     tuner,
		diag:      diag,
		priorOnly: priorOnly,
	}
}

// laplaceLogProb is log(rate/2) - rate*|x|
func laplaceLogProb(x, rate float64) float64 {
	return distuv.Laplace{Mu: 0, Scale: 1 / rate}.LogProb(x)
}

// InclusionProb is P(Gamma=1 | p, beta): the slab/spike odds computed in log
// space.
func InclusionProb(p, beta float64) float64 {
	slab := math.Log(p) + laplaceLogProb(beta, SlabRate)
	spike := math.Log1p(-p) + laplaceLogProb(beta, SpikeRate)
	return 1 / (1 + math.Exp(spike-slab))
}

// Sweep updates every edge once
func (ss *SpikeSlab) Sweep(st *State, sweep int, adapting bool) {
	for k := 0; k < st.Num(); k++ {
		ss.UpdateEdge(st, k, sweep, adapting)
	}
}

// UpdateEdge runs the four steps for edge k (0-based)
func (ss *SpikeSlab) UpdateEdge(st *State, k int, sweep int, adapting bool) {
	// 1: p | Gamma is conjugate Beta
	g := float64(st.Gamma[k])
	p := distuv.Beta{
		Alpha: ss.prior.Alpha[k] + g,
		Beta:  ss.prior.Beta[k] + 1 - g,
		Src:   ss.gen,
	}.Rand()
	if p > 0 && p < 1 {
		st.P[k] = p
	}

	// 2: Gamma | p, Beta
	incl := InclusionProb(st.P[k], st.Beta[k])
	if !math.IsNaN(incl) {
		st.Gamma[k] = int(distuv.Bernoulli{P: incl, Src: ss.gen}.Rand())
	}

	// 3
	st.TauPrior[k] = rateFor(st.Gamma[k])

	// 4: Beta | everything else, random walk MH
	ss.updateBeta(st, k, sweep, adapting)
}

func (ss *SpikeSlab) updateBeta(st *State, k int, sweep int, adapting bool) {
	cur := st.Beta[k]
	rate := st.TauPrior[k]

	delta := distuv.Normal{Mu: 0, Sigma: ss.tuner.Steps[k], Src: ss.gen}.Rand()
	prop := cur + delta

	logRatio := laplaceLogProb(prop, rate) - laplaceLogProb(cur, rate)
	i, j := ss.edges.Cell(k)
	if !ss.priorOnly {
		logRatio += ss.car.DeltaLogLik(i, j, delta, st.Tau)
	}

	// Always draw so the stream position does not depend on the ratio
	u := ss.gen.OpenFloat64()

	if math.IsNaN(logRatio) || math.IsInf(logRatio, 1) || math.IsNaN(prop) || math.IsInf(prop, 0) {
		ss.diag.NumericFailure(sweep, k, logRatio)
		ss.tuner.Record(k, false, adapting)
		return
	}

	accepted := math.Log(u) < logRatio
	if accepted {
		st.Beta[k] = prop
		ss.car.Shift(i, j, delta)
	}
	ss.tuner.Record(k, accepted, adapting)
}
