package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CraigKelly/carnet/model"
)

var dotInputs []string
var dotThreshold float64
var dotOutput string

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Write a graphviz network of the edges supported by chain output",
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := newStartupParams()
		if err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		if len(dotOutput) > 0 {
			f, err := os.Create(dotOutput)
			if err != nil {
				return errors.Wrapf(err, "Could not create dot file %s", dotOutput)
			}
			defer f.Close()
			w = f
		}

		return DotOutput(sp, dotInputs, dotThreshold, w)
	},
}

func init() {
	dotCmd.Flags().StringSliceVarP(&dotInputs, "input", "i", nil, "Chain CSV file(s) written by run")
	dotCmd.Flags().Float64Var(&dotThreshold, "threshold", 0.5, "Minimum posterior inclusion probability for an edge")
	dotCmd.Flags().StringVarP(&dotOutput, "out", "o", "", "Dot output file (default stdout)")
	dotCmd.MarkFlagRequired("input")
}

// dotEdge is an edge that made it past the threshold
type dotEdge struct {
	id   int
	e    model.Edge
	prob float64
}

// DotOutput pools the inclusion samples from every chain file and writes
// an undirected graph of the edges at or above threshold.
func DotOutput(sp *startupParams, inputs []string, threshold float64, w io.Writer) error {
	prob, err := model.NewProblemFromFile(model.NetReader{}, sp.problemFile)
	if err != nil {
		return err
	}

	totals := make(map[int]float64)
	rows := 0
	for _, fn := range inputs {
		f, err := os.Open(fn)
		if err != nil {
			return errors.Wrapf(err, "Could not open chain file %s", fn)
		}
		t, r, err := inclusionTotals(f)
		f.Close()
		if err != nil {
			return errors.Wrapf(err, "Could not read chain file %s", fn)
		}
		for k, v := range t {
			totals[k] += v
		}
		rows += r
	}
	if rows < 1 {
		return errors.Errorf("No samples found in %d chain file(s)", len(inputs))
	}

	var edges []dotEdge
	for k, v := range totals {
		i, j, err := prob.Edges.ToCoord(k)
		if err != nil {
			return errors.Wrapf(err, "Chain does not match problem %s", prob.Name)
		}
		if q := v / float64(rows); q >= threshold {
			edges = append(edges, dotEdge{id: k, e: model.Edge{I: i, J: j}, prob: q})
		}
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a].id < edges[b].id })

	sp.out.Printf("%d edges at or above %.3f from %d samples\n", len(edges), threshold, rows)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "strict graph G {\n")
	for v := 1; v <= prob.Vars(); v++ {
		fmt.Fprintf(bw, "    V%d;\n", v)
	}
	for _, de := range edges {
		fmt.Fprintf(bw, "    V%d -- V%d [label=\"%.3f\"];\n", de.e.I, de.e.J, de.prob)
	}
	fmt.Fprintf(bw, "}\n")

	return errors.Wrap(bw.Flush(), "Could not write dot output")
}
