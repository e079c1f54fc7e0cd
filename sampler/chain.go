package sampler

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Snapshot is one retained draw. Only the monitored fields are filled.
type Snapshot struct {
	Iteration int       // 1-based sweep number
	Beta      []float64 // nil unless Beta is monitored
	Gamma     []int     // nil unless Gamma is monitored
	P         []float64 // nil unless p is monitored
	Tau       float64   // zero unless tau is monitored
}

// Chain is the ordered set of retained draws for one chain. It is only
// appended to while the driver runs and must be treated as read only once
// returned.
type Chain struct {
	ID         int
	Monitor    Monitor
	Num        int         // Edge count
	Snapshots  []Snapshot  // Retained draws, in sweep order
	Warnings   []string    // Non-fatal diagnostics raised while running
	Sweeps     int         // Sweeps actually completed
	Complete   bool        // False when the run was stopped early
	Checkpoint *Checkpoint // State after the last completed sweep
}

// NewChain returns an empty chain with room for length snapshots
func NewChain(id int, mon Monitor, num int, length int) *Chain {
	return &Chain{
		ID:        id,
		Monitor:   mon,
		Num:       num,
		Snapshots: make([]Snapshot, 0, length),
	}
}

// Len is the number of retained draws
func (c *Chain) Len() int {
	return len(c.Snapshots)
}

// record appends the monitored parts of st
func (c *Chain) record(sweep int, st *State) {
	snap := Snapshot{Iteration: sweep}
	if c.Monitor.Beta {
		snap.Beta = append([]float64(nil), st.Beta...)
	}
	if c.Monitor.Gamma {
		snap.Gamma = append([]int(nil), st.Gamma...)
	}
	if c.Monitor.P {
		snap.P = append([]float64(nil), st.P...)
	}
	if c.Monitor.Tau {
		snap.Tau = st.Tau
	}
	c.Snapshots = append(c.Snapshots, snap)
}

// Columns names the table columns: "iteration", then Beta[1..Num],
// Gamma[1..Num], p[1..Num] and tau for whichever are monitored.
func (c *Chain) Columns() []string {
	cols := []string{"iteration"}
	vec := func(name string) {
		for k := 1; k <= c.Num; k++ {
			cols = append(cols, fmt.Sprintf("%s[%d]", name, k))
		}
	}
	if c.Monitor.Beta {
		vec(ParamBeta)
	}
	if c.Monitor.Gamma {
		vec(ParamGamma)
	}
	if c.Monitor.P {
		vec(ParamP)
	}
	if c.Monitor.Tau {
		cols = append(cols, ParamTau)
	}
	return cols
}

// Table returns the chain as iterations × parameters, with columns named by
// Columns. The matrix is nil when the chain is empty.
func (c *Chain) Table() ([]string, *mat.Dense) {
	cols := c.Columns()
	if len(c.Snapshots) < 1 {
		return cols, nil
	}

	tab := mat.NewDense(len(c.Snapshots), len(cols), nil)
	for r, s := range c.Snapshots {
		row := tab.RawRowView(r)
		row[0] = float64(s.Iteration)
		pos := 1
		if c.Monitor.Beta {
			pos += copy(row[pos:], s.Beta)
		}
		if c.Monitor.Gamma {
			for _, g := range s.Gamma {
				row[pos] = float64(g)
				pos++
			}
		}
		if c.Monitor.P {
			pos += copy(row[pos:], s.P)
		}
		if c.Monitor.Tau {
			row[pos] = s.Tau
		}
	}
	return cols, tab
}

// InclusionProb is the posterior mean of Gamma per edge
func (c *Chain) InclusionProb() ([]float64, error) {
	if !c.Monitor.Gamma {
		return nil, errors.Errorf("Chain %d does not monitor %s", c.ID, ParamGamma)
	}
	if len(c.Snapshots) < 1 {
		return nil, errors.Errorf("Chain %d has no samples", c.ID)
	}

	mean := make([]float64, c.Num)
	for _, s := range c.Snapshots {
		for k, g := range s.Gamma {
			mean[k] += float64(g)
		}
	}
	for k := range mean {
		mean[k] /= float64(len(c.Snapshots))
	}
	return mean, nil
}

// PosteriorMean is the mean of a monitored vector parameter (Beta or p) per edge
func (c *Chain) PosteriorMean(param string) ([]float64, error) {
	var pick func(s *Snapshot) []float64
	switch {
	case param == ParamBeta && c.Monitor.Beta:
		pick = func(s *Snapshot) []float64 { return s.Beta }
	case param == ParamP && c.Monitor.P:
		pick = func(s *Snapshot) []float64 { return s.P }
	case param == ParamGamma:
		return c.InclusionProb()
	default:
		return nil, errors.Errorf("Chain %d does not monitor vector parameter %s", c.ID, param)
	}
	if len(c.Snapshots) < 1 {
		return nil, errors.Errorf("Chain %d has no samples", c.ID)
	}

	mean := make([]float64, c.Num)
	for i := range c.Snapshots {
		for k, v := range pick(&c.Snapshots[i]) {
			mean[k] += v
		}
	}
	for k := range mean {
		mean[k] /= float64(len(c.Snapshots))
	}
	return mean, nil
}

// MergeChains pools the inclusion probabilities of several chains, weighting
// each chain by its sample count.
func MergeChains(chains []*Chain) ([]float64, error) {
	if len(chains) < 1 {
		return nil, errors.Errorf("Can not merge 0 chains")
	}

	num := chains[0].Num
	merged := make([]float64, num)
	total := 0
	for _, ch := range chains {
		if ch.Num != num {
			return nil, errors.Errorf("Cannot merge chain with %d edges into %d edges", ch.Num, num)
		}
		incl, err := ch.InclusionProb()
		if err != nil {
			return nil, err
		}
		for k, q := range incl {
			merged[k] += q * float64(ch.Len())
		}
		total += ch.Len()
	}

	for k := range merged {
		merged[k] /= float64(total)
	}
	return merged, nil
}
