package model

// Beta prior hyperparameters for the per-edge mixing probability.
//
// NOTE: the model documentation talks about prior mean inclusion rates of 0.8
// for edges we believe in and 0.5 otherwise, but Beta(30,10) has mean 0.75.
// The literal hyperparameters are what we sample with; Mean reports the real
// implied value.
const (
	KnownEdgeAlpha   = 30.0
	UnknownEdgeAlpha = 10.0
	EdgeBeta         = 10.0
)

// Prior holds the Beta(Alpha[k], Beta[k]) hyperparameters of p[k] for every edge
type Prior struct {
	Edge  []int
	Alpha []float64
	Beta  []float64
}

// NewPrior derives the per-edge hyperparameters from a binary prior edge
// vector. num is the expected edge count (from the EdgeIndex).
func NewPrior(priorEdge []int, num int) (*Prior, error) {
	if len(priorEdge) != num {
		return nil, ConfigErrorf("Prior edge vector has %d entries, expected %d", len(priorEdge), num)
	}

	pr := &Prior{
		Edge:  append([]int(nil), priorEdge...),
		Alpha: make([]float64, num),
		Beta:  make([]float64, num),
	}

	for k, e := range priorEdge {
		switch e {
		case 1:
			pr.Alpha[k] = KnownEdgeAlpha
		case 0:
			pr.Alpha[k] = UnknownEdgeAlpha
		default:
			return nil, ConfigErrorf("Prior edge %d has value %d: must be 0 or 1", k+1, e)
		}
		pr.Beta[k] = EdgeBeta
	}

	return pr, nil
}

// Num is the number of edges covered
func (pr *Prior) Num() int {
	return len(pr.Alpha)
}

// Mean is the prior mean of p[k] (0-based k)
func (pr *Prior) Mean(k int) float64 {
	return pr.Alpha[k] / (pr.Alpha[k] + pr.Beta[k])
}
