package model

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CAR is the problem type string at the head of a network problem file
const CAR = "CAR"

// Reader implementors instantiate a problem from a byte stream
type Reader interface {
	ReadProblem(data []byte) (*Problem, error)
}

// Problem is everything the sampler needs to know about one network: the raw
// (unstandardized) observations, the edge index, and the prior edge vector.
type Problem struct {
	Name      string     // Problem name
	Data      *mat.Dense // n×p observations, rows are observations
	Edges     *EdgeIndex // Edge id <-> matrix cell mapping
	PriorEdge []int      // 0/1 prior belief per edge, in edge id order
}

// NewProblemFromFile reads and checks a problem from the specified file
func NewProblemFromFile(r Reader, filename string) (*Problem, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not READ problem from %s", filename)
	}

	prob, err := NewProblemFromBuffer(r, data)
	if err != nil {
		return nil, err
	}

	// Name the problem from the file
	var ext = filepath.Ext(filename)
	prob.Name = filename[0 : len(filename)-len(ext)]

	return prob, nil
}

// NewProblemFromBuffer creates a problem from the given pre-read data
func NewProblemFromBuffer(r Reader, data []byte) (*Problem, error) {
	p, err := r.ReadProblem(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not PARSE problem")
	}

	err = p.Check()
	if err != nil {
		return nil, errors.Wrapf(err, "Parsed problem is not valid")
	}

	return p, nil
}

// Vars is p, the number of variables (columns)
func (p *Problem) Vars() int {
	_, c := p.Data.Dims()
	return c
}

// Obs is n, the number of observations (rows)
func (p *Problem) Obs() int {
	r, _ := p.Data.Dims()
	return r
}

// Check returns an error if there is a problem with the problem
func (p *Problem) Check() error {
	if p.Data == nil {
		return ConfigErrorf("Problem %s has no data", p.Name)
	}
	if p.Edges == nil {
		return ConfigErrorf("Problem %s has no edge index", p.Name)
	}
	if p.Edges.P != p.Vars() {
		return ConfigErrorf("Edge index is for p=%d but data has %d columns", p.Edges.P, p.Vars())
	}
	if _, err := NewPrior(p.PriorEdge, p.Edges.Num()); err != nil {
		return errors.Wrapf(err, "Problem %s has an invalid prior edge vector", p.Name)
	}
	return nil
}
