package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CraigKelly/carnet/model"
	"github.com/CraigKelly/carnet/rand"
	"github.com/CraigKelly/carnet/sampler"
)

// simulateOptions describe the synthetic network to write
type simulateOptions struct {
	vars       int
	obs        int
	edges      string
	tau        float64
	priorTruth bool
}

var simOpts simulateOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Write a synthetic CAR problem to the model file",
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := newStartupParams()
		if err != nil {
			return err
		}
		return SimulateProblem(sp, simOpts)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simOpts.vars, "vars", 4, "Number of variables (p)")
	f.IntVar(&simOpts.obs, "obs", 50, "Number of observations (n)")
	f.StringVar(&simOpts.edges, "edges", "1-2:0.5,3-4:0.5", "True non-zero edges as i-j:beta, comma separated")
	f.Float64Var(&simOpts.tau, "tau", 1.0, "Noise precision")
	f.BoolVar(&simOpts.priorTruth, "prior-truth", true, "Set the prior edge vector to the true edges (else all 0)")
}

// parseEdgeSpec reads "i-j:beta,..." into a per-edge effect vector
func parseEdgeSpec(spec string, edges *model.EdgeIndex) ([]float64, error) {
	beta := make([]float64, edges.Num())

	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if len(item) < 1 {
			continue
		}

		pair, val, ok := strings.Cut(item, ":")
		if !ok {
			return nil, errors.Errorf("Invalid edge %q: expected i-j:beta", item)
		}
		is, js, ok := strings.Cut(pair, "-")
		if !ok {
			return nil, errors.Errorf("Invalid edge %q: expected i-j:beta", item)
		}

		i, err := strconv.Atoi(strings.TrimSpace(is))
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid edge %q", item)
		}
		j, err := strconv.Atoi(strings.TrimSpace(js))
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid edge %q", item)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid edge %q", item)
		}

		k, err := edges.ToLinear(i, j)
		if err != nil {
			return nil, err
		}
		if beta[k-1] != 0 {
			return nil, errors.Errorf("Edge %d-%d given more than once", i, j)
		}
		beta[k-1] = b
	}

	return beta, nil
}

// SimulateProblem draws observations from a known network and writes them
// as a problem file to the model path
func SimulateProblem(sp *startupParams, opts simulateOptions) error {
	edges, err := model.FullEdgeIndex(opts.vars)
	if err != nil {
		return err
	}

	beta, err := parseEdgeSpec(opts.edges, edges)
	if err != nil {
		return err
	}

	gen, err := rand.NewGenerator(sp.randomSeed)
	if err != nil {
		return err
	}

	data, err := sampler.SimulateCAR(gen, sampler.EffectMatrix(edges, beta), opts.obs, opts.tau)
	if err != nil {
		return err
	}

	prior := make([]int, edges.Num())
	if opts.priorTruth {
		for k, b := range beta {
			if b != 0 {
				prior[k] = 1
			}
		}
	}

	prob := &model.Problem{
		Name:      "simulated",
		Data:      data,
		Edges:     edges,
		PriorEdge: prior,
	}
	if err = prob.Check(); err != nil {
		return err
	}

	f, err := os.Create(sp.problemFile)
	if err != nil {
		return errors.Wrapf(err, "Could not create problem file %s", sp.problemFile)
	}
	defer f.Close()

	if err = model.WriteNet(f, prob); err != nil {
		return err
	}
	sp.out.Printf("Wrote %d observations of %d vars to %s\n", opts.obs, opts.vars, sp.problemFile)
	return f.Close()
}
