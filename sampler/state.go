package sampler

import (
	"math"

	"github.com/CraigKelly/carnet/model"
	"github.com/pkg/errors"
)

// Laplace rates for the two mixture components. The density is
// rate/2 * exp(-rate*|x|), so the slab (Gamma=1) is the wide component and the
// spike (Gamma=0) is concentrated at zero.
const (
	SlabRate  = 2.0
	SpikeRate = 20.0
)

// State is every latent variable at one sweep. Slices are indexed by 0-based
// edge position (edge id - 1).
type State struct {
	Gamma    []int     `json:"gamma"`    // Inclusion indicator
	P        []float64 `json:"p"`        // Mixing probability
	TauPrior []float64 `json:"tauprior"` // Laplace rate selected by Gamma
	Beta     []float64 `json:"beta"`     // Effect size
	Tau      float64   `json:"tau"`      // Shared residual precision
}

// NewState returns the neutral starting state: Beta=0, Gamma=0 (spike), p at
// its prior mean and tau=1.
func NewState(prior *model.Prior) *State {
	num := prior.Num()
	st := &State{
		Gamma:    make([]int, num),
		P:        make([]float64, num),
		TauPrior: make([]float64, num),
		Beta:     make([]float64, num),
		Tau:      1.0,
	}

	for k := range st.P {
		st.P[k] = prior.Mean(k)
		st.TauPrior[k] = SpikeRate
	}

	return st
}

// Num is the edge count
func (st *State) Num() int {
	return len(st.Beta)
}

// Clone returns a deep copy
func (st *State) Clone() *State {
	return &State{
		Gamma:    append([]int(nil), st.Gamma...),
		P:        append([]float64(nil), st.P...),
		TauPrior: append([]float64(nil), st.TauPrior...),
		Beta:     append([]float64(nil), st.Beta...),
		Tau:      st.Tau,
	}
}

// Check returns an error if any invariant is broken
func (st *State) Check() error {
	num := len(st.Beta)
	if len(st.Gamma) != num || len(st.P) != num || len(st.TauPrior) != num {
		return errors.Errorf("State slices disagree on edge count (%d/%d/%d/%d)",
			len(st.Gamma), len(st.P), len(st.TauPrior), num)
	}

	for k := 0; k < num; k++ {
		g := st.Gamma[k]
		if g != 0 && g != 1 {
			return errors.Errorf("Edge %d has Gamma=%d", k+1, g)
		}
		if !(st.P[k] > 0 && st.P[k] < 1) {
			return errors.Errorf("Edge %d has p=%v outside (0,1)", k+1, st.P[k])
		}
		if st.TauPrior[k] != rateFor(g) {
			return errors.Errorf("Edge %d has tauprior=%v with Gamma=%d", k+1, st.TauPrior[k], g)
		}
		if math.IsNaN(st.Beta[k]) || math.IsInf(st.Beta[k], 0) {
			return errors.Errorf("Edge %d has non-finite Beta=%v", k+1, st.Beta[k])
		}
	}

	if !(st.Tau > 0) || math.IsInf(st.Tau, 0) {
		return errors.Errorf("Invalid tau=%v", st.Tau)
	}

	return nil
}

func rateFor(gamma int) float64 {
	if gamma == 1 {
		return SlabRate
	}
	return SpikeRate
}
