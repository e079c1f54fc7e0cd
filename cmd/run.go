package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CraigKelly/carnet/model"
	"github.com/CraigKelly/carnet/sampler"
)

// runOptions are the run settings that are not part of sampler.Config
type runOptions struct {
	chainFile      string
	checkpointFile string
	resumeFile     string
	httpAddr       string
	traceEvery     int
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the spike-and-slab CAR sampler over a problem file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRunConfig(cfgFile, cmd)
		if err != nil {
			return err
		}

		sp, err := newStartupParams()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		_, err = RunSampler(ctx, sp, cfg, runOpts)
		return err
	},
}

func init() {
	addRunFlags(runCmd)

	f := runCmd.Flags()
	f.StringVarP(&runOpts.chainFile, "out", "o", "chain.csv", "Chain CSV output (one file per chain)")
	f.StringVar(&runOpts.checkpointFile, "checkpoint", "", "Write final chain checkpoints to this JSON file")
	f.StringVar(&runOpts.resumeFile, "resume", "", "Continue chains from this checkpoint file")
	f.StringVar(&runOpts.httpAddr, "http", "", "Serve progress with expvar at this address (e.g. :8000)")
	f.IntVar(&runOpts.traceEvery, "trace-every", 100, "Sweeps between trace file lines")
}

// addRunFlags adds the flags that loadRunConfig merges over the config file
func addRunFlags(cmd *cobra.Command) {
	def := sampler.DefaultConfig()
	f := cmd.Flags()
	f.Int("iterations", def.Iterations, "Total sweeps per chain, burn-in included")
	f.Int("burnin", def.BurnIn, "Sweeps discarded before recording")
	f.Int("thin", def.Thin, "Record every Nth sweep after burn-in")
	f.Int("chains", def.Chains, "Independent chains to run in parallel")
	f.StringSlice("monitor", def.Monitor, "Parameters to record: Beta, Gamma, p, tau")
	f.Bool("prior-only", def.PriorOnly, "Ignore the data (prior predictive check)")
	f.Int("adapt-interval", def.AdaptInterval, "MH proposals between step size adjustments during burn-in")
	f.Float64("initial-step", def.InitialStep, "Starting random walk SD for Beta")
}

// RunSampler reads the problem, runs every chain, and writes the results. A
// run interrupted through ctx still writes whatever the chains collected.
func RunSampler(ctx context.Context, sp *startupParams, cfg sampler.Config, opts runOptions) ([]*sampler.Chain, error) {
	// Read model from file
	sp.out.Printf("Reading problem from %s\n", sp.problemFile)
	prob, err := model.NewProblemFromFile(model.NetReader{}, sp.problemFile)
	if err != nil {
		return nil, err
	}
	sp.out.Printf("Problem has %d vars, %d observations, %d edges\n", prob.Vars(), prob.Obs(), prob.Edges.Num())

	data, err := model.Standardize(prob.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not standardize %s", sp.problemFile)
	}

	drv, err := sampler.NewDriver(cfg, data, prob.Edges, prob.PriorEdge)
	if err != nil {
		return nil, err
	}

	if len(opts.resumeFile) > 0 {
		f, err := os.Open(opts.resumeFile)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not open checkpoint file %s", opts.resumeFile)
		}
		drv.Resume, err = sampler.ReadCheckpoints(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		sp.out.Printf("Resuming %d chains from %s\n", len(drv.Resume), opts.resumeFile)
	}

	var mon *monitor
	if len(opts.httpAddr) > 0 {
		mon = newMonitor(opts.httpAddr)
		mon.Configure(cfg)
		if err = mon.Start(); err != nil {
			return nil, err
		}
		defer mon.Stop()
	}

	drv.Progress = progressFunc(sp, cfg, mon, opts.traceEvery)

	sp.out.Printf("Sampling: %d chains, %d iterations, burn-in %d, thin %d, seed %d\n",
		cfg.Chains, cfg.Iterations, cfg.BurnIn, cfg.Thin, cfg.Seed)
	startTime := time.Now()

	chains, err := drv.Run(ctx)
	if err != nil {
		return nil, err
	}
	sp.out.Printf("Sampling done in %.3fs\n", time.Since(startTime).Seconds())

	for _, ch := range chains {
		if !ch.Complete {
			sp.out.Printf("WARNING: chain %d stopped after %d of %d sweeps\n", ch.ID, ch.Sweeps, cfg.Iterations)
		}
		for _, w := range ch.Warnings {
			sp.out.Printf("WARNING: chain %d: %s\n", ch.ID, w)
		}

		fn := chainFileName(opts.chainFile, ch.ID, len(chains))
		if err = writeChainFile(fn, ch); err != nil {
			return chains, err
		}
		sp.out.Printf("Chain %d: %d samples written to %s\n", ch.ID, ch.Len(), fn)
	}

	if len(opts.checkpointFile) > 0 {
		if err = writeCheckpointFile(opts.checkpointFile, chains); err != nil {
			return chains, err
		}
		sp.out.Printf("Checkpoints written to %s\n", opts.checkpointFile)
	}

	summaryReport(sp, prob, chains)
	return chains, nil
}

func progressFunc(sp *startupParams, cfg sampler.Config, mon *monitor, every int) sampler.ProgressFunc {
	var monProgress sampler.ProgressFunc
	if mon != nil {
		monProgress = mon.Progress(cfg)
	}
	if monProgress == nil && sp.trace == nil {
		return nil
	}

	return func(chain int, sweep int, phase sampler.Phase, st *sampler.State) {
		if monProgress != nil {
			monProgress(chain, sweep, phase, st)
		}
		if sp.trace != nil && every > 0 && sweep%every == 0 {
			inc := 0
			for _, g := range st.Gamma {
				inc += g
			}
			sp.trace.Printf("chain=%d sweep=%d phase=%s tau=%.6f included=%d\n", chain, sweep, phase, st.Tau, inc)
		}
	}
}

func writeCheckpointFile(filename string, chains []*sampler.Chain) error {
	cps := make([]*sampler.Checkpoint, len(chains))
	for i, ch := range chains {
		cps[i] = ch.Checkpoint
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Could not create checkpoint file %s", filename)
	}
	defer f.Close()

	if err = sampler.WriteCheckpoints(f, cps); err != nil {
		return err
	}
	return f.Close()
}

// summaryReport prints the pooled posterior per edge
func summaryReport(sp *startupParams, prob *model.Problem, chains []*sampler.Chain) {
	incl, err := sampler.MergeChains(chains)
	if err != nil {
		sp.out.Printf("No inclusion summary: %v\n", err)
		return
	}

	var beta []float64
	if chains[0].Monitor.Beta && chains[0].Len() > 0 {
		beta, _ = chains[0].PosteriorMean(sampler.ParamBeta)
	}

	sp.out.Printf("%6s %4s %4s %6s %10s %10s\n", "Edge", "I", "J", "Prior", "P(incl)", "Beta(ch0)")
	for k, e := range prob.Edges.Pairs() {
		b := "-"
		if beta != nil {
			b = fmt.Sprintf("%.4f", beta[k])
		}
		sp.out.Printf("%6d %4d %4d %6d %10.4f %10s\n", k+1, e.I, e.J, prob.PriorEdge[k], incl[k], b)
	}

	if len(chains) > 1 {
		agree, err := sampler.ChainAgreement(chains)
		if err != nil {
			sp.out.Printf("No chain agreement: %v\n", err)
			return
		}
		sp.out.Printf("Chain agreement | MeanAE:%7.4f MaxAE:%7.4f Hel:%7.4f JSD:%7.4f\n",
			agree.MeanAbsError, agree.MaxAbsError, agree.MaxHellinger, agree.MaxJSDiverge)
	}
}
