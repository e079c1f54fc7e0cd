package sampler

import (
	"math"

	"github.com/pkg/errors"
)

// Agreement summarises how closely two chains agree on the posterior edge
// inclusion probabilities. Each edge is treated as a Bernoulli marginal
// [1-q, q]. Fields beginning with Mean are averaged over edges and Max are the
// worst edge.
type Agreement struct {
	MeanAbsError  float64
	MeanHellinger float64
	MeanJSDiverge float64

	MaxAbsError  float64
	MaxHellinger float64
	MaxJSDiverge float64
}

// NewAgreement compares two inclusion probability vectors
func NewAgreement(q1 []float64, q2 []float64) (*Agreement, error) {
	if len(q1) != len(q2) {
		return nil, errors.Errorf("Edge count mismatch %d != %d", len(q1), len(q2))
	}
	if len(q1) < 1 {
		return nil, errors.Errorf("No edges to compare")
	}

	a := Agreement{}

	var d float64
	for k, p1 := range q1 {
		b1 := []float64{1 - p1, p1}
		b2 := []float64{1 - q2[k], q2[k]}

		d = math.Abs(p1 - q2[k])
		a.MeanAbsError += d
		a.MaxAbsError = math.Max(d, a.MaxAbsError)

		d = HellingerDiff(b1, b2)
		a.MeanHellinger += d
		a.MaxHellinger = math.Max(d, a.MaxHellinger)

		d = JSDivergence(b1, b2)
		a.MeanJSDiverge += d
		a.MaxJSDiverge = math.Max(d, a.MaxJSDiverge)
	}

	fc := float64(len(q1))
	a.MeanAbsError /= fc
	a.MeanHellinger /= fc
	a.MeanJSDiverge /= fc

	return &a, nil
}

// ChainAgreement compares every chain against the pooled estimate of all the
// others and returns the worst case.
func ChainAgreement(chains []*Chain) (*Agreement, error) {
	if len(chains) < 2 {
		return nil, errors.Errorf("At least 2 chains required for agreement")
	}

	worst := &Agreement{}
	for i, ch := range chains {
		rest := make([]*Chain, 0, len(chains)-1)
		rest = append(rest, chains[:i]...)
		rest = append(rest, chains[i+1:]...)

		mine, err := ch.InclusionProb()
		if err != nil {
			return nil, err
		}
		others, err := MergeChains(rest)
		if err != nil {
			return nil, err
		}

		a, err := NewAgreement(mine, others)
		if err != nil {
			return nil, err
		}

		worst.MeanAbsError = math.Max(worst.MeanAbsError, a.MeanAbsError)
		worst.MeanHellinger = math.Max(worst.MeanHellinger, a.MeanHellinger)
		worst.MeanJSDiverge = math.Max(worst.MeanJSDiverge, a.MeanJSDiverge)
		worst.MaxAbsError = math.Max(worst.MaxAbsError, a.MaxAbsError)
		worst.MaxHellinger = math.Max(worst.MaxHellinger, a.MaxHellinger)
		worst.MaxJSDiverge = math.Max(worst.MaxJSDiverge, a.MaxJSDiverge)
	}
	return worst, nil
}

// HellingerDiff is the Hellinger distance between two normalized discrete
// distributions: sqrt(sum((sqrt(p) - sqrt(q))**2)) / sqrt(2)
func HellingerDiff(p1 []float64, p2 []float64) float64 {
	errSum := 0.0
	for c, v := range p1 {
		d := math.Sqrt(v) - math.Sqrt(p2[c])
		errSum += d * d
	}
	return math.Sqrt(errSum) / math.Sqrt2
}

// klDivergence returns the Kullback–Leibler divergence D_{KL}(P || Q) in
// bits. Zero entries of P contribute nothing.
func klDivergence(v1 []float64, v2 []float64) float64 {
	diverge := 0.0
	for i, p1 := range v1 {
		if p1 <= 0 {
			continue
		}
		diverge += p1 * math.Log2(p1/v2[i])
	}
	return diverge
}

// JSDivergence returns the Jensen-Shannon divergence, which is a
// symmetric gneralization of the KL divergence
func JSDivergence(p1 []float64, p2 []float64) float64 {
	mid := make([]float64, len(p1))
	for i := range p1 {
		mid[i] = (p1[i] + p2[i]) * 0.5
	}
	return 0.5 * (klDivergence(p1, mid) + klDivergence(p2, mid))
}
