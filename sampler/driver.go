package sampler

import (
	"context"
	"log/slog"

	"github.com/CraigKelly/carnet/model"
	"github.com/CraigKelly/carnet/rand"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Phase is where a chain is in its run
type Phase int

// Chain phases, in order
const (
	Initializing Phase = iota
	BurningIn
	Sampling
	Done
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "Initializing"
	case BurningIn:
		return "Burning-in"
	case Sampling:
		return "Sampling"
	case Done:
		return "Done"
	}
	return "Unknown"
}

// ProgressFunc is called after every completed sweep. With more than one
// chain it is called concurrently from each chain's goroutine. st must not be
// retained or modified.
type ProgressFunc func(chain int, sweep int, phase Phase, st *State)

// Driver runs independent MCMC chains over one network problem. Each sweep
// is:
//
//	SpikeSlab (p, Gamma, tauprior, Beta for edges 1..Num in order)
//	-> assemble M and refresh the CAR residuals
//	-> NoisePrecision (tau)
//
// A chain records a snapshot of the monitored parameters on every Thin-th
// sweep after BurnIn.
type Driver struct {
	Config   Config
	Monitor  Monitor
	Data     *mat.Dense // Standardized n×p observations, shared read only
	Edges    *model.EdgeIndex
	Prior    *model.Prior
	Progress ProgressFunc  // Optional
	Resume   []*Checkpoint // Optional: chain c continues from Resume[c]
	Logger   *slog.Logger
}

// NewDriver validates everything up front. Every failure here is an
// ErrConfiguration and no sampling has happened.
func NewDriver(cfg Config, data *mat.Dense, edges *model.EdgeIndex, priorEdge []int) (*Driver, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	mon, err := ParseMonitor(cfg.Monitor)
	if err != nil {
		return nil, err
	}
	if data == nil || edges == nil {
		return nil, model.ConfigErrorf("Both data and an edge index are required")
	}
	if _, p := data.Dims(); p != edges.P {
		return nil, model.ConfigErrorf("Data has %d variables but edge index is for %d", p, edges.P)
	}
	prior, err := model.NewPrior(priorEdge, edges.Num())
	if err != nil {
		return nil, err
	}

	return &Driver{
		Config:  cfg,
		Monitor: mon,
		Data:    data,
		Edges:   edges,
		Prior:   prior,
		Logger:  slog.Default().With(slog.String("component", "sampler")),
	}, nil
}

// Run runs all chains in parallel and returns them in chain order. If ctx is
// cancelled the chains stop at the next sweep boundary and whatever was
// collected is returned without an error.
func (d *Driver) Run(ctx context.Context) ([]*Chain, error) {
	if d.Resume != nil && len(d.Resume) != d.Config.Chains {
		return nil, model.ConfigErrorf("Have %d checkpoints for %d chains", len(d.Resume), d.Config.Chains)
	}

	chains := make([]*Chain, d.Config.Chains)

	g := new(errgroup.Group)
	for c := range chains {
		g.Go(func() error {
			ch, err := d.RunChain(ctx, c)
			if err != nil {
				return errors.Wrapf(err, "Chain %d failed", c)
			}
			chains[c] = ch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chains, nil
}

// RunChain runs the single chain c. It is what Run calls for each chain.
func (d *Driver) RunChain(ctx context.Context, c int) (*Chain, error) {
	r, err := d.newRunner(c)
	if err != nil {
		return nil, err
	}
	return r.run(ctx), nil
}

// runner is the private per-chain state: nothing in here is shared
type runner struct {
	d      *Driver
	id     int
	gen    *rand.Generator
	state  *State
	car    *CAR
	tuner  *StepTuner
	diag   *Diagnostics
	ss     *SpikeSlab
	noise  *NoisePrecision
	start  int // Sweeps already completed (from a checkpoint)
	phase  Phase
	logger *slog.Logger
}

func (d *Driver) newRunner(c int) (*runner, error) {
	cfg := d.Config
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.Int("chain", c))

	r := &runner{
		d:      d,
		id:     c,
		car:    NewCAR(d.Data),
		diag:   NewDiagnostics(logger),
		phase:  Initializing,
		logger: logger,
	}

	var err error
	if d.Resume != nil {
		cp := d.Resume[c]
		if cp == nil || cp.State == nil || cp.Tuner == nil {
			return nil, model.ConfigErrorf("Checkpoint for chain %d is incomplete", c)
		}
		if cp.State.Num() != d.Edges.Num() || len(cp.Tuner.Steps) != d.Edges.Num() {
			return nil, model.ConfigErrorf("Checkpoint for chain %d has %d edges, problem has %d", c, cp.State.Num(), d.Edges.Num())
		}
		if cp.Iteration < 0 || cp.Iteration > cfg.Iterations {
			return nil, model.ConfigErrorf("Checkpoint for chain %d is at sweep %d, outside [0,%d]", c, cp.Iteration, cfg.Iterations)
		}

		r.gen, err = rand.NewGeneratorSlice(cp.SeedKey)
		if err != nil {
			return nil, err
		}
		r.gen.Skip(cp.Draws)

		r.state = cp.State.Clone()
		r.tuner = &StepTuner{
			Steps:    append([]float64(nil), cp.Tuner.Steps...),
			Accepted: append([]int(nil), cp.Tuner.Accepted...),
			Proposed: append([]int(nil), cp.Tuner.Proposed...),
			Interval: cp.Tuner.Interval,
		}
		r.start = cp.Iteration
	} else {
		r.gen, err = rand.NewGeneratorSlice([]uint64{uint64(cfg.Seed), uint64(c)})
		if err != nil {
			return nil, err
		}
		r.state = NewState(d.Prior)
		r.tuner = NewStepTuner(d.Edges.Num(), cfg.InitialStep, cfg.AdaptInterval)
	}

	// Residuals must match the starting Beta
	r.car.Refresh(d.Edges, r.state.Beta)

	r.ss = NewSpikeSlab(r.gen, d.Edges, d.Prior, r.car, r.tuner, r.diag, cfg.PriorOnly)
	r.noise = NewNoisePrecision(r.gen, r.car, cfg.PriorOnly)

	return r, nil
}

func (r *runner) run(ctx context.Context) *Chain {
	cfg := r.d.Config
	ch := NewChain(r.id, r.d.Monitor, r.d.Edges.Num(), cfg.ChainLength())

	r.logger.Debug("Chain starting",
		slog.Int("edges", r.d.Edges.Num()),
		slog.Int("from_sweep", r.start),
		slog.Int("iterations", cfg.Iterations))

	sweep := r.start
	for sweep < cfg.Iterations {
		// Stop requests only take effect between sweeps
		if ctx.Err() != nil {
			r.logger.Info("Chain stopped early", slog.Int("sweep", sweep))
			break
		}

		sweep++
		r.sweep(sweep)

		if cfg.Recorded(sweep) {
			ch.record(sweep, r.state)
		}
		if r.d.Progress != nil {
			r.d.Progress(r.id, sweep, r.phase, r.state)
		}
	}

	ch.Sweeps = sweep
	ch.Complete = sweep >= cfg.Iterations
	if ch.Complete {
		r.phase = Done
	}
	ch.Warnings = r.diag.Warnings
	ch.Checkpoint = r.checkpoint(sweep)

	r.logger.Debug("Chain finished",
		slog.Int("sweeps", sweep),
		slog.Int("samples", ch.Len()),
		slog.Int64("numeric_rejects", r.diag.NumericRejects),
		slog.Int("warnings", len(ch.Warnings)))

	return ch
}

// sweep is one full Gibbs pass
func (r *runner) sweep(sweep int) {
	adapting := sweep <= r.d.Config.BurnIn
	if adapting {
		r.phase = BurningIn
	} else {
		r.phase = Sampling
	}

	r.ss.Sweep(r.state, sweep, adapting)

	r.car.Refresh(r.d.Edges, r.state.Beta)

	if draw, ok := r.noise.Sample(r.state); !ok {
		r.diag.TauFailure(sweep, draw)
	}

	r.diag.Observe(sweep, r.state)
}

func (r *runner) checkpoint(sweep int) *Checkpoint {
	return &Checkpoint{
		Chain:     r.id,
		Iteration: sweep,
		State:     r.state.Clone(),
		Tuner: &StepTuner{
			Steps:    append([]float64(nil), r.tuner.Steps...),
			Accepted: append([]int(nil), r.tuner.Accepted...),
			Proposed: append([]int(nil), r.tuner.Proposed...),
			Interval: r.tuner.Interval,
		},
		SeedKey: r.gen.Key(),
		Draws:   r.gen.Draws(),
	}
}
