package sampler

import (
	"math"

	"github.com/CraigKelly/carnet/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gamma(shape, rate) prior on the residual precision tau
const (
	TauPriorShape = 8.0
	TauPriorRate  = 8.0
)

// NoisePrecision draws tau from its conjugate full conditional
type NoisePrecision struct {
	gen       *rand.Generator
	car       *CAR
	priorOnly bool
}

// NewNoisePrecision creates the tau sampler over the given evaluator
func NewNoisePrecision(gen *rand.Generator, car *CAR, priorOnly bool) *NoisePrecision {
	return &NoisePrecision{gen: gen, car: car, priorOnly: priorOnly}
}

// Posterior returns the Gamma shape and rate of tau given the current
// residuals. Without a likelihood it is just the prior.
func (np *NoisePrecision) Posterior() (shape, rate float64) {
	if np.priorOnly {
		return TauPriorShape, TauPriorRate
	}
	return TauPriorShape + 0.5*float64(np.car.Cells()), TauPriorRate + 0.5*np.car.SSR()
}

// Sample updates st.Tau. A draw that is not a positive finite number is
// discarded, st.Tau is left alone and false is returned.
func (np *NoisePrecision) Sample(st *State) (float64, bool) {
	shape, rate := np.Posterior()
	draw := distuv.Gamma{Alpha: shape, Beta: rate, Src: np.gen}.Rand()
	if !(draw > 0) || math.IsInf(draw, 0) {
		return draw, false
	}
	st.Tau = draw
	return draw, true
}
