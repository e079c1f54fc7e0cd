package model

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// NetReader reads the plain text network problem format:
//
//	CAR
//	p n
//	<n rows of p observations>
//	Num
//	<Num lines of: i j prior>
//
// Blank lines and lines starting with '#' are ignored. Variables in the edge
// lines are 1-based. This mirrors the layout of the UAI model format.
type NetReader struct {
}

// Preprocessor for net files: remove lines that are blank or comments.
// Return the new buffer and the count of "real" lines found.
func netPreprocess(data []byte) (string, int) {
	lines := strings.Split(string(data), "\n")

	newPos := 0
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if len(ln) < 1 || ln[0] == '#' {
			continue // Empty or comment: skip
		}

		lines[newPos] = ln
		newPos++
	}

	return strings.Join(lines[:newPos], "\n"), newPos
}

// ReadProblem implements the model.Reader interface
func (r NetReader) ReadProblem(data []byte) (*Problem, error) {
	text, lineCount := netPreprocess(data)
	if lineCount < 1 {
		return nil, errors.Errorf("No lines found in file")
	}

	// CAR p n [data] num i j prior: p=2, n=1 is the smallest possible
	fr := NewFieldReader(text)
	if len(fr.Fields) < 9 {
		return nil, errors.Errorf("Invalid data: only %d fields found (<9)", len(fr.Fields))
	}

	var err error

	typ, err := fr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "Error reading net file on Type")
	}
	if typ != CAR {
		return nil, errors.Errorf("Unknown problem type %v", typ)
	}

	var p, n int
	p, err = fr.ReadInt()
	if err != nil {
		return nil, errors.Wrap(err, "Error reading net file on variable count")
	}
	n, err = fr.ReadInt()
	if err != nil {
		return nil, errors.Wrap(err, "Error reading net file on observation count")
	}
	if p < 2 {
		return nil, errors.Errorf("Invalid variable count: %d", p)
	}
	if n < 1 {
		return nil, errors.Errorf("Invalid observation count: %d", n)
	}

	obs := mat.NewDense(n, p, nil)
	for row := 0; row < n; row++ {
		if err = fr.ReadFloats(obs.RawRowView(row)); err != nil {
			return nil, errors.Wrapf(err, "Error reading observation %d", row+1)
		}
	}

	var num int
	num, err = fr.ReadInt()
	if err != nil {
		return nil, errors.Wrap(err, "Error reading net file on edge count")
	}
	if num < 0 {
		return nil, errors.Errorf("Invalid edge count: %d", num)
	}

	pairs := make([]Edge, num)
	prior := make([]int, num)
	for k := 0; k < num; k++ {
		var e Edge
		if e.I, err = fr.ReadInt(); err != nil {
			return nil, errors.Wrapf(err, "Error reading first variable of edge %d", k+1)
		}
		if e.J, err = fr.ReadInt(); err != nil {
			return nil, errors.Wrapf(err, "Error reading second variable of edge %d", k+1)
		}
		if prior[k], err = fr.ReadInt(); err != nil {
			return nil, errors.Wrapf(err, "Error reading prior of edge %d", k+1)
		}
		pairs[k] = e
	}

	if rest := fr.Remaining(); rest > 0 {
		return nil, errors.Errorf("Found %d unexpected trailing fields", rest)
	}

	edges, err := NewEdgeIndex(p, pairs)
	if err != nil {
		return nil, err
	}

	// Finally all done - we leave it to our caller to perform final checking
	return &Problem{
		Data:      obs,
		Edges:     edges,
		PriorEdge: prior,
	}, nil
}

// WriteNet writes the problem in the format NetReader understands
func WriteNet(w io.Writer, prob *Problem) error {
	bw := bufio.NewWriter(w)

	n, p := prob.Data.Dims()
	// The name goes in a comment line, so it must stay on one line
	name := strings.Join(strings.Fields(prob.Name), " ")
	fmt.Fprintf(bw, "# %s\n%s\n%d %d\n", name, CAR, p, n)
	for row := 0; row < n; row++ {
		for col := 0; col < p; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%.17g", prob.Data.At(row, col))
		}
		bw.WriteByte('\n')
	}

	fmt.Fprintf(bw, "%d\n", prob.Edges.Num())
	for k, e := range prob.Edges.Pairs() {
		fmt.Fprintf(bw, "%d %d %d\n", e.I, e.J, prob.PriorEdge[k])
	}

	return errors.Wrap(bw.Flush(), "Could not write net file")
}
